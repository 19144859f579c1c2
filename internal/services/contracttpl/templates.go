// Package contracttpl renders the built-in contract templates. Each
// template is a fixed legal-style document with the party names, scope,
// amount and duration substituted in; there is no templating engine
// behind it, just string substitution.
package contracttpl

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrUnknownTemplate = errors.New("unknown contract template")

type Data struct {
	PartyA   string
	PartyB   string
	Scope    string
	Amount   *float64
	Duration string
	Date     time.Time
}

type TemplateInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog lists the available templates in a stable order.
func Catalog() []TemplateInfo {
	return []TemplateInfo{
		{ID: "freelance", Name: "Freelance Service Agreement", Description: "Independent contractor engagement for project work"},
		{ID: "employment", Name: "Employment Agreement", Description: "Standard employer/employee terms"},
		{ID: "partnership", Name: "Partnership Agreement", Description: "Two-party business partnership"},
		{ID: "service", Name: "Service Agreement", Description: "General ongoing services engagement"},
		{ID: "consulting", Name: "Consulting Agreement", Description: "Advisory engagement with defined deliverables"},
		{ID: "rental", Name: "Rental Agreement", Description: "Equipment or property rental terms"},
		{ID: "nda", Name: "Non-Disclosure Agreement", Description: "Mutual confidentiality protection"},
	}
}

// Render produces the contract text for the given template id.
func Render(id string, data Data) (string, error) {
	fn, ok := templates[id]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return strings.TrimLeft(fn(data), "\n"), nil
}

func (d Data) date() string {
	if d.Date.IsZero() {
		return time.Now().Format("January 2, 2006")
	}
	return d.Date.Format("January 2, 2006")
}

func (d Data) amountOr(fallback string) string {
	if d.Amount == nil {
		return fallback
	}
	return fmt.Sprintf("$%.2f", *d.Amount)
}

func (d Data) durationOr(fallback string) string {
	if strings.TrimSpace(d.Duration) == "" {
		return fallback
	}
	return d.Duration
}

func signatureBlock(labelA, partyA, labelB, partyB string) string {
	return fmt.Sprintf(`%s: %s
Signature: _______________________
Date: _______________________

%s: %s
Signature: _______________________
Date: _______________________`, labelA, partyA, labelB, partyB)
}

var templates = map[string]func(Data) string{
	"freelance":   freelance,
	"employment":  employment,
	"partnership": partnership,
	"service":     service,
	"consulting":  consulting,
	"rental":      rental,
	"nda":         nda,
}

func freelance(d Data) string {
	return fmt.Sprintf(`
FREELANCE SERVICE AGREEMENT

This Freelance Service Agreement ("Agreement") is entered into as of %s, by and between:

SERVICE PROVIDER: %s
CLIENT: %s

1. SERVICES
The Service Provider agrees to provide the following services:
%s

2. TERM
This Agreement shall commence on %s and shall continue for %s.

3. COMPENSATION
The Client agrees to pay the Service Provider %s for the services rendered.

Payment terms: Net 30 days from invoice date.

4. INDEPENDENT CONTRACTOR
The Service Provider is an independent contractor and not an employee of the Client.

5. CONFIDENTIALITY
Both parties agree to maintain confidentiality of any proprietary information shared during this engagement.

6. INTELLECTUAL PROPERTY
Upon full payment, all work product created under this Agreement shall be the property of the Client.

7. TERMINATION
Either party may terminate this Agreement with 14 days written notice.

8. GOVERNING LAW
This Agreement shall be governed by the laws of the applicable jurisdiction.

IN WITNESS WHEREOF, the parties have executed this Agreement as of the date first written above.

%s
`, d.date(), d.PartyA, d.PartyB, d.Scope, d.date(), d.durationOr("the duration of the project"),
		d.amountOr("the agreed amount"), signatureBlock("SERVICE PROVIDER", d.PartyA, "CLIENT", d.PartyB))
}

func employment(d Data) string {
	return fmt.Sprintf(`
EMPLOYMENT AGREEMENT

This Employment Agreement ("Agreement") is made as of %s, between:

EMPLOYER: %s
EMPLOYEE: %s

1. POSITION AND DUTIES
The Employee is hired for the position described as:
%s

2. TERM OF EMPLOYMENT
Employment shall commence on %s and continue for %s.

3. COMPENSATION
The Employee shall receive compensation of %s per annum.

4. BENEFITS
The Employee shall be entitled to benefits as per company policy.

5. WORKING HOURS
Standard working hours and conditions shall apply as per company policy.

6. CONFIDENTIALITY
The Employee agrees to maintain strict confidentiality regarding company information.

7. NON-COMPETE
During employment and for a reasonable period thereafter, the Employee agrees not to engage in competing business activities.

8. TERMINATION
Either party may terminate this employment with appropriate notice as per applicable law.

9. GOVERNING LAW
This Agreement is governed by applicable employment laws.

%s
`, d.date(), d.PartyA, d.PartyB, d.Scope, d.date(), d.durationOr("an indefinite period"),
		d.amountOr("the agreed salary"), signatureBlock("EMPLOYER", d.PartyA, "EMPLOYEE", d.PartyB))
}

func partnership(d Data) string {
	return fmt.Sprintf(`
PARTNERSHIP AGREEMENT

This Partnership Agreement ("Agreement") is entered into as of %s, by and between:

PARTNER A: %s
PARTNER B: %s

1. PARTNERSHIP PURPOSE
The partners agree to enter into a partnership for the following purpose:
%s

2. TERM
This partnership shall commence on %s and continue for %s.

3. CAPITAL CONTRIBUTIONS
Initial capital contributions: %s

4. PROFIT AND LOSS SHARING
Profits and losses shall be shared equally unless otherwise agreed in writing.

5. MANAGEMENT AND DUTIES
Both partners shall have equal rights in the management of partnership business.

6. DECISION MAKING
Major decisions require unanimous consent of all partners.

7. BOOKS AND RECORDS
Accurate books and records shall be maintained and available to all partners.

8. DISSOLUTION
The partnership may be dissolved by mutual agreement or as provided by law.

9. GOVERNING LAW
This Agreement shall be governed by applicable partnership laws.

%s
`, d.date(), d.PartyA, d.PartyB, d.Scope, d.date(), d.durationOr("an indefinite period"),
		d.amountOr("As agreed by partners"), signatureBlock("PARTNER A", d.PartyA, "PARTNER B", d.PartyB))
}

func service(d Data) string {
	return fmt.Sprintf(`
SERVICE AGREEMENT

This Service Agreement ("Agreement") is made as of %s, between:

SERVICE PROVIDER: %s
CLIENT: %s

1. SERVICES TO BE PROVIDED
The Service Provider agrees to provide the following services:
%s

2. TERM
This Agreement is effective from %s and shall continue for %s.

3. FEES AND PAYMENT
Service fees: %s
Payment schedule: As invoiced

4. SERVICE STANDARDS
Services shall be performed in a professional and workmanlike manner.

5. WARRANTIES
The Service Provider warrants that services will meet industry standards.

6. LIABILITY
Liability shall be limited to the amount paid for services under this Agreement.

7. TERMINATION
Either party may terminate with written notice as specified in this Agreement.

8. DISPUTE RESOLUTION
Any disputes shall be resolved through mediation before legal action.

9. ENTIRE AGREEMENT
This Agreement constitutes the entire agreement between the parties.

%s
`, d.date(), d.PartyA, d.PartyB, d.Scope, d.date(), d.durationOr("the agreed period"),
		d.amountOr("As agreed"), signatureBlock("SERVICE PROVIDER", d.PartyA, "CLIENT", d.PartyB))
}

func consulting(d Data) string {
	return fmt.Sprintf(`
CONSULTING AGREEMENT

This Consulting Agreement ("Agreement") is entered into as of %s, by and between:

CONSULTANT: %s
CLIENT: %s

1. CONSULTING SERVICES
The Consultant agrees to provide advisory services regarding:
%s

2. TERM
This engagement shall commence on %s and continue for %s.

3. COMPENSATION
The Client agrees to pay the Consultant %s for the consulting services.

Payment terms: Net 30 days from invoice date.

4. INDEPENDENT CONTRACTOR
The Consultant is an independent contractor and not an employee of the Client.

5. WORK PRODUCT
Deliverables prepared under this Agreement shall be the property of the Client upon full payment.

6. CONFIDENTIALITY
The Consultant agrees to keep all non-public Client information confidential.

7. TERMINATION
Either party may terminate this Agreement with 14 days written notice.

8. GOVERNING LAW
This Agreement shall be governed by the laws of the applicable jurisdiction.

%s
`, d.date(), d.PartyA, d.PartyB, d.Scope, d.date(), d.durationOr("the duration of the engagement"),
		d.amountOr("the agreed fee"), signatureBlock("CONSULTANT", d.PartyA, "CLIENT", d.PartyB))
}

func rental(d Data) string {
	return fmt.Sprintf(`
RENTAL AGREEMENT

This Rental Agreement ("Agreement") is made as of %s, between:

LESSOR: %s
LESSEE: %s

1. RENTED PROPERTY
The Lessor agrees to rent to the Lessee the following:
%s

2. TERM
The rental period shall commence on %s and continue for %s.

3. RENT
The Lessee agrees to pay %s for the rental period.

4. USE AND CARE
The Lessee shall use the rented property with reasonable care and return it in its original condition, ordinary wear excepted.

5. DAMAGE AND LOSS
The Lessee is responsible for damage or loss beyond ordinary wear during the rental period.

6. TERMINATION
Either party may terminate this Agreement with written notice as agreed.

7. GOVERNING LAW
This Agreement shall be governed by applicable laws.

%s
`, d.date(), d.PartyA, d.PartyB, d.Scope, d.date(), d.durationOr("the agreed rental period"),
		d.amountOr("the agreed rent"), signatureBlock("LESSOR", d.PartyA, "LESSEE", d.PartyB))
}

func nda(d Data) string {
	return fmt.Sprintf(`
NON-DISCLOSURE AGREEMENT (NDA)

This Non-Disclosure Agreement ("Agreement") is entered into as of %s, by and between:

DISCLOSING PARTY: %s
RECEIVING PARTY: %s

1. PURPOSE
The purpose of this Agreement is to protect confidential information related to:
%s

2. DEFINITION OF CONFIDENTIAL INFORMATION
"Confidential Information" means any information disclosed by either party that is marked as confidential or should reasonably be considered confidential.

3. OBLIGATIONS
The Receiving Party agrees to:
- Keep all Confidential Information strictly confidential
- Not disclose to any third parties without written consent
- Use Confidential Information only for the stated purpose
- Protect information with the same care as their own confidential information

4. TERM
This Agreement shall remain in effect for %s from the date of disclosure.

5. EXCLUSIONS
This Agreement does not apply to information that:
- Is publicly available
- Was known prior to disclosure
- Is independently developed
- Is required to be disclosed by law

6. RETURN OF MATERIALS
Upon request, all confidential materials shall be returned or destroyed.

7. NO LICENSE
This Agreement does not grant any license or rights to the Confidential Information.

8. REMEDIES
Breach of this Agreement may result in irreparable harm, and injunctive relief may be sought.

9. GOVERNING LAW
This Agreement is governed by applicable laws.

%s
`, d.date(), d.PartyA, d.PartyB, d.Scope, d.durationOr("2 years"),
		signatureBlock("DISCLOSING PARTY", d.PartyA, "RECEIVING PARTY", d.PartyB))
}
