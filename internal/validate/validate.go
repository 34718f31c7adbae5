// Package validate derives field-level errors from a purchase-order
// document. Check is a pure function: same document in, same error map out,
// no side effects, no short-circuiting.
package validate

import (
	"fmt"
	"regexp"
	"time"

	"github.com/podraft/podraft/internal/document"
	"github.com/podraft/podraft/internal/selection"
)

// Errors maps a field key to its message. Keys are top-level field names,
// "<talentID>_<field>" for per-talent errors, and the synthetic
// KeyTalentSelection for the cross-cutting selection-count rule. An empty map
// means the document is valid.
type Errors map[string]string

// KeyTalentSelection is the error key for the selection-count rule.
const KeyTalentSelection = "talentSelection"

const dateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// requiredFields lists the always-required top-level fields with their
// display labels. ReceivedFromEmail is shown as required by the form but was
// never enforced; the validator keeps it optional and only checks its shape.
var requiredFields = []struct {
	field document.OrderField
	label string
}{
	{document.FieldClientName, "Client Name"},
	{document.FieldOrderType, "Purchase Order Type"},
	{document.FieldOrderNo, "Purchase Order No"},
	{document.FieldReceivedOn, "Received On date"},
	{document.FieldReceivedFromName, "Received From Name"},
	{document.FieldStartDate, "PO Start Date"},
	{document.FieldEndDate, "PO End Date"},
	{document.FieldBudget, "Budget"},
}

// talentFields lists the rate fields required on every selected talent.
var talentFields = []struct {
	field document.TalentField
	label string
}{
	{document.TalentContractDuration, "Contract Duration"},
	{document.TalentBillRate, "Bill Rate"},
	{document.TalentStandardTimeBR, "Standard Time BR"},
	{document.TalentOverTimeBR, "Over Time BR"},
}

// Check evaluates every rule against the document and returns the combined
// error map.
func Check(po document.PurchaseOrder) Errors {
	errs := Errors{}

	for _, req := range requiredFields {
		if fieldValue(po, req.field) == "" {
			errs[req.field.Key()] = fmt.Sprintf("%s is required", req.label)
		}
	}

	if po.ReceivedFromEmail != "" && !emailPattern.MatchString(po.ReceivedFromEmail) {
		errs[document.FieldReceivedFromEmail.Key()] = "Please enter a valid email address"
	}

	if po.Budget != "" && !validBudget(po.Budget) {
		errs[document.FieldBudget.Key()] = "Budget must be numeric with maximum 5 digits"
	}

	if endsBeforeStart(po.StartDate, po.EndDate) {
		errs[document.FieldEndDate.Key()] = "PO End Date cannot be before PO Start Date"
	}

	selectedCount := selection.Count(po)
	switch {
	case po.OrderType == document.OrderTypeIndividual && selectedCount > 1:
		errs[KeyTalentSelection] = "Individual PO allows selection of only one talent"
	case po.OrderType == document.OrderTypeGroup && selectedCount < 2:
		errs[KeyTalentSelection] = "Group PO requires at least two talents to be selected"
	}

	for _, section := range po.Sections {
		for _, talent := range section.Talents {
			if !talent.Selected {
				continue
			}
			for _, req := range talentFields {
				if talentValue(talent, req.field) == "" {
					key := TalentKey(talent.ID, req.field)
					errs[key] = fmt.Sprintf("%s is required for %s", req.label, talent.Name)
				}
			}
		}
	}

	return errs
}

// TalentKey builds the error-map key for a per-talent field.
func TalentKey(talentID string, field document.TalentField) string {
	return talentID + "_" + field.Key()
}

// FieldRequired reports whether a top-level field must be non-empty in every
// document. The rendering layer derives required markers from this instead
// of duplicating the rule.
func FieldRequired(field document.OrderField) bool {
	for _, req := range requiredFields {
		if req.field == field {
			return true
		}
	}
	return false
}

// TalentFieldRequired reports whether a talent's rate field is required. The
// rate fields are required exactly when the talent is selected; currency
// pickers never are.
func TalentFieldRequired(t document.Talent, field document.TalentField) bool {
	if !t.Selected {
		return false
	}
	for _, req := range talentFields {
		if req.field == field {
			return true
		}
	}
	return false
}

func validBudget(budget string) bool {
	if len(budget) > 5 {
		return false
	}
	for _, r := range budget {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// endsBeforeStart compares the stored date strings. Unparseable values are
// ignored here; the required-field rules already cover empty dates and the
// form only produces the ISO layout.
func endsBeforeStart(start, end string) bool {
	if start == "" || end == "" {
		return false
	}
	startAt, err := time.Parse(dateLayout, start)
	if err != nil {
		return false
	}
	endAt, err := time.Parse(dateLayout, end)
	if err != nil {
		return false
	}
	return endAt.Before(startAt)
}

func fieldValue(po document.PurchaseOrder, field document.OrderField) string {
	switch field {
	case document.FieldClientName:
		return po.ClientName
	case document.FieldOrderType:
		return string(po.OrderType)
	case document.FieldOrderNo:
		return po.OrderNo
	case document.FieldReceivedOn:
		return po.ReceivedOn
	case document.FieldReceivedFromName:
		return po.ReceivedFromName
	case document.FieldReceivedFromEmail:
		return po.ReceivedFromEmail
	case document.FieldStartDate:
		return po.StartDate
	case document.FieldEndDate:
		return po.EndDate
	case document.FieldBudget:
		return po.Budget
	case document.FieldCurrency:
		return po.Currency
	}
	return ""
}

func talentValue(t document.Talent, field document.TalentField) string {
	switch field {
	case document.TalentContractDuration:
		return t.ContractDuration
	case document.TalentBillRate:
		return t.BillRate
	case document.TalentCurrency:
		return t.Currency
	case document.TalentStandardTimeBR:
		return t.StandardTimeBR
	case document.TalentStandardCurrency:
		return t.StandardCurrency
	case document.TalentOverTimeBR:
		return t.OverTimeBR
	case document.TalentOverCurrency:
		return t.OverCurrency
	}
	return ""
}
