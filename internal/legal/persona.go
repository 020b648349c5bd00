package legal

import "strings"

// Persona is the caller-declared role used to flavor the last-resort answer.
type Persona string

const (
	PersonaFreelancer  Persona = "freelancer"
	PersonaStudent     Persona = "student"
	PersonaStartup     Persona = "startup"
	PersonaIndividual  Persona = "individual"
	PersonaUnspecified Persona = "unspecified"
)

// ParsePersona matches raw case-sensitively. Anything unknown is PersonaUnspecified.
func ParsePersona(raw string) Persona {
	switch p := Persona(raw); p {
	case PersonaFreelancer, PersonaStudent, PersonaStartup, PersonaIndividual:
		return p
	default:
		return PersonaUnspecified
	}
}

const ultimatePrefix = "I'm sorry, I can't reach my full legal knowledge base right now, but I still want to help."

var personaClauses = map[Persona]string{
	PersonaFreelancer: "As a freelancer, your client contracts, invoices and intellectual property terms are usually where legal questions start.",
	PersonaStudent:    "As a student, questions about leases, part-time work and academic rights are common, and many universities offer free legal clinics.",
	PersonaStartup:    "As a startup, early decisions about company structure, founder agreements and protecting your ideas matter a lot.",
	PersonaIndividual: "As an individual, knowing your basic rights at work, at home and in everyday agreements goes a long way.",
}

const (
	contractNudge   = "Since you mentioned a contract, start by checking the parties, payment terms, termination clauses and any liability limits, and keep a signed copy."
	employmentNudge = "Since you mentioned employment, keep records of your contract, pay slips and any written communication with your employer."
	genericClosing  = "Could you tell me a little more about your situation so I can point you in the right direction?"
)

// UltimateFallback builds the last-resort answer. It only concatenates constant
// clauses, so it cannot fail and never returns an empty string.
func UltimateFallback(persona Persona, text string) string {
	var b strings.Builder
	b.WriteString(ultimatePrefix)

	if clause, ok := personaClauses[persona]; ok {
		b.WriteString(" ")
		b.WriteString(clause)
	}

	lowered := strings.ToLower(text)
	b.WriteString(" ")
	switch {
	case strings.Contains(lowered, "contract"):
		b.WriteString(contractNudge)
	case strings.Contains(lowered, "employment"):
		b.WriteString(employmentNudge)
	default:
		b.WriteString(genericClosing)
	}
	return b.String()
}
