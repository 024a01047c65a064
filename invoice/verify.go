package invoice

import "strings"

// ProblemLevel distinguishes a hard issue from a soft warning.
type ProblemLevel string

const (
	LevelError   ProblemLevel = "error"
	LevelWarning ProblemLevel = "warning"
)

// Problem is one pre-flight finding surfaced by Verify: a non-fatal list of
// warnings distinct from the hard VALIDATION errors Create/Update return.
type Problem struct {
	Level   ProblemLevel
	Message string
}

// Verify runs a pre-flight check over an invoice before issuance, surfacing
// problems (incomplete seller profile, payment deadline before the issue
// date, non-PLN currency) that Create/Update/Issue do not themselves
// reject, and re-checking the stored lines.
func (s *Service) Verify(id uint) ([]Problem, error) {
	inv, err := s.store.GetInvoice(id)
	if err != nil {
		return nil, err
	}

	var problems []Problem
	seller := s.cfg.Seller

	if strings.TrimSpace(seller.Name) == "" {
		problems = append(problems, Problem{LevelError, "no seller name is configured"})
	}
	if strings.TrimSpace(seller.NIP) == "" {
		problems = append(problems, Problem{LevelError, "no seller NIP is configured"})
	}
	if strings.TrimSpace(seller.Street) == "" && strings.TrimSpace(seller.City) == "" {
		problems = append(problems, Problem{LevelWarning, "seller address is incomplete; the XML will still emit an empty address line"})
	}

	for _, it := range inv.Items {
		if strings.TrimSpace(it.Name) == "" {
			problems = append(problems, Problem{LevelWarning, "an invoice line has no name"})
			break
		}
	}

	if len(inv.Items) == 0 {
		problems = append(problems, Problem{LevelError, "invoice has no line items"})
	}

	if inv.PaymentDeadline != "" && inv.PaymentDeadline < inv.IssueDate {
		problems = append(problems, Problem{LevelWarning, "payment deadline is earlier than the issue date"})
	}

	if inv.Currency != "PLN" {
		problems = append(problems, Problem{LevelWarning, "currency is not PLN; FA(3) tax amounts are still computed in the local minor unit"})
	}

	return problems, nil
}
