package legal

// Canned answers. They give general legal information, not advice for a specific case.

const greetingResponse = "Hello! I'm your legal information assistant. I can help you understand contracts, employment rights, property and tenancy questions, starting a business, intellectual property, family law and criminal law basics. What would you like to know?"

const legalAdviceResponse = "I can share general legal information, but I'm not a lawyer and this isn't legal advice. For decisions that carry real consequences, such as signing a major agreement, going to court or responding to a formal notice, talk to a licensed attorney in your jurisdiction. Many areas have legal aid organizations and bar association referral services that offer free or low-cost consultations."

const contractResponse = "A contract is a legally binding agreement between two or more parties. To be enforceable it generally needs an offer, acceptance, consideration (something of value exchanged by each side), capacity of the parties, and a lawful purpose. Contracts can be written or oral, but written contracts are much easier to prove. Key parts to understand are the scope of work, payment terms, duration, termination rights and what happens if someone breaches."

const contractReviewResponse = "When reviewing a contract, check these points:\n1. Parties: are the names and legal entities correct?\n2. Scope: is it clear exactly what each side must deliver?\n3. Payment: amounts, due dates, late fees and expenses.\n4. Term and termination: how long it lasts and how either side can end it.\n5. Liability and indemnity: who pays if something goes wrong, and are there caps?\n6. Intellectual property: who owns what is created.\n7. Confidentiality and non-compete clauses: are they reasonable in scope and time?\n8. Dispute resolution: governing law, jurisdiction, arbitration.\nIf a clause is unclear or one-sided, ask for it to be changed before you sign."

const contractSigningResponse = "Before signing a contract:\n1. Read the whole document, including schedules and anything incorporated by reference.\n2. Make sure every verbal promise you rely on is written into the contract.\n3. Confirm the dates, amounts and deliverables match what you agreed.\n4. Check the termination and renewal terms so you are not locked in unexpectedly.\n5. Never sign with blank spaces left to be filled in later.\n6. Keep a fully signed copy for your records.\nIf the stakes are high, have a lawyer review it first."

const employmentResponse = "Employment law covers the relationship between employers and employees: hiring, wages and hours, workplace safety, discrimination, leave and termination. Your rights depend on your jurisdiction, your contract and whether you are classified as an employee or an independent contractor. Keep copies of your employment contract, pay slips and any written policies, since they usually define what you are entitled to."

const employmentTerminationResponse = "If you were fired or terminated:\n1. Ask for the reason and the termination in writing.\n2. Check your employment contract and handbook for notice periods or severance terms.\n3. Make sure you receive your final paycheck, including any accrued vacation where the law requires it.\n4. Termination can be unlawful if it is discriminatory, retaliatory (for example after reporting safety issues or taking protected leave) or in breach of contract.\n5. Apply for unemployment benefits promptly; dismissal without misconduct usually does not disqualify you.\n6. Note the deadlines: wrongful dismissal claims often must be filed within weeks or months.\nKeep a written record of events and talk to an employment lawyer or labor agency if you think the dismissal was unfair."

const employmentWagesResponse = "For wage and pay questions: most jurisdictions set a minimum wage and rules for overtime, usually for hours worked beyond a standard week. Your employer must pay you on time for all hours worked, and unpaid wages can typically be claimed through a labor department or in court. Keep your own record of hours and compare it against your pay slips."

const employmentDiscriminationResponse = "Workplace discrimination and harassment based on protected characteristics such as race, sex, religion, age, disability or national origin are unlawful in most jurisdictions. Document each incident with dates and witnesses, report it through your employer's internal process in writing, and be aware that retaliation for reporting is itself prohibited. Equality or labor agencies often have strict filing deadlines."

const propertyResponse = "Property law covers owning, buying, selling and renting real estate. Important topics include title and ownership, leases and tenancy, zoning and land use, and the rights and duties of landlords and tenants. Always get agreements about property in writing, because many jurisdictions require it for them to be enforceable."

const propertyTenancyResponse = "As a tenant you generally have a right to a habitable home, privacy (your landlord usually must give notice before entering) and the return of your security deposit minus documented damage. Evictions must follow a legal process; a landlord usually cannot change the locks or remove your belongings without a court order. Keep your lease, rent receipts and photos of the property's condition at move-in and move-out."

const propertyPurchaseResponse = "When buying property: get a professional inspection, confirm the seller has clear title (a title search or title insurance helps), review the purchase agreement's contingencies for financing and inspection, and understand all closing costs. Do not waive contingencies without understanding the risk, and read every document at closing before you sign."

const businessResponse = "Business law covers forming and running a company: choosing a legal structure, registering the business, contracts with customers and suppliers, employment, taxes and regulatory compliance. The structure you choose affects your personal liability, taxation and how easily you can raise money."

const businessFormationResponse = "Common business structures are:\n1. Sole proprietorship: simple, but you are personally liable for business debts.\n2. Partnership: shared ownership; use a written partnership agreement.\n3. LLC: limited liability with flexible taxation, popular with small businesses.\n4. Corporation: separate legal entity, best suited to raising outside investment.\nTo form one you typically choose a name, file registration documents with the state or national registry, obtain any licenses, and get a tax identification number. Founders should also sign an agreement covering ownership, vesting and decision-making."

const businessTaxResponse = "Business tax obligations depend on your structure: sole proprietors and most LLCs report profits on personal returns, while corporations may pay tax at the entity level. You may also owe sales tax, payroll taxes for employees and estimated quarterly payments. Keep business and personal finances separate and consider an accountant for your first filings."

const ipResponse = "Intellectual property protects creations of the mind. Copyright protects original works such as writing, code, music and art automatically once they are fixed in a tangible form. Trademarks protect brand names and logos. Patents protect new inventions. Trade secrets protect confidential business information. Knowing which one fits your work determines how you protect it."

const ipPatentResponse = "A patent gives the inventor exclusive rights to an invention for a limited time, typically 20 years from filing. To qualify, the invention must be new, non-obvious and useful. Avoid public disclosure before filing, since it can destroy novelty in many countries, and consider a provisional application to secure an early filing date. Patent drafting is technical, so a registered patent attorney or agent is strongly recommended."

const ipTrademarkResponse = "A trademark protects names, logos and slogans that identify your goods or services. Some rights arise from use alone, but registration gives stronger, broader protection. Before adopting a mark, search existing registrations to avoid conflicts, and choose something distinctive rather than descriptive. Keep using the mark consistently, and monitor for infringers."

const familyResponse = "Family law covers marriage, divorce, child custody and support, adoption and domestic protection orders. Courts decide issues involving children based on the child's best interests. Because these matters are emotional and fact-specific, mediation and family law attorneys are common routes to a resolution."

const familyDivorceResponse = "Divorce generally involves dividing property and debts, deciding on spousal support, and arranging custody and support for any children. Many jurisdictions allow no-fault divorce. Gather financial records early, avoid hiding or moving assets, and consider mediation, which is often faster and cheaper than litigation."

const familyCustodyResponse = "Custody decisions are based on the best interests of the child: stability, each parent's ability to care for the child, and sometimes the child's own wishes. Custody can be legal (decision-making) or physical (where the child lives), sole or joint. Child support is usually calculated using official guidelines based on income and parenting time, and it can be modified if circumstances change significantly."

const criminalResponse = "Criminal law deals with offenses prosecuted by the state. If you are charged with a crime you have the right to be presumed innocent, the right to remain silent and the right to a lawyer; if you cannot afford one, you may be entitled to a public defender. Criminal matters can have serious consequences, so talk to a criminal defense attorney as early as possible."

const criminalArrestResponse = "If you are arrested or questioned by police:\n1. Stay calm and do not resist, even if you believe the arrest is unfair.\n2. You have the right to remain silent: say clearly that you wish to use it.\n3. Ask for a lawyer and do not answer questions until one is present.\n4. Do not consent to searches of your person, car or home without a warrant, but do not physically interfere.\n5. Remember officers' names and badge numbers and write down what happened as soon as you can."

const continuityContractResponse = "Continuing our contract discussion: clauses like that are worth reading closely. Check what obligation triggers the clause, whether the amounts or consequences are proportionate, whether there is a notice or cure period, and how it interacts with the termination and liability sections. If a clause seems one-sided, you can usually negotiate it before signing."

// clarificationTemplate takes the original query text.
const clarificationTemplate = "I want to make sure I understand your question: \"%s\". Could you tell me a bit more about the situation? For example, is it about a contract, employment, property or rent, a business, intellectual property, a family matter or a criminal issue?"
