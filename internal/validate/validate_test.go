package validate

import (
	"reflect"
	"testing"

	"github.com/podraft/podraft/internal/document"
	"github.com/podraft/podraft/internal/selection"
)

// filledDoc returns a document with every top-level required field populated
// and the first talent selected and fully priced, under the given order type.
func filledDoc(t *testing.T, orderType document.OrderType) document.PurchaseOrder {
	t.Helper()
	doc := document.Seed()
	fields := map[document.OrderField]string{
		document.FieldClientName:       "collabara",
		document.FieldOrderType:        string(orderType),
		document.FieldOrderNo:          "PO-1001",
		document.FieldReceivedOn:       "2025-05-10",
		document.FieldReceivedFromName: "Priya Sharma",
		document.FieldStartDate:        "2025-06-01",
		document.FieldEndDate:          "2025-12-31",
		document.FieldBudget:           "45000",
		document.FieldCurrency:         "USD - Dollars ($)",
	}
	for field, value := range fields {
		doc = document.SetField(doc, field, value)
	}
	var err error
	doc, err = selection.Toggle(doc, "1", "t1")
	if err != nil {
		t.Fatalf("select talent: %v", err)
	}
	for _, tf := range []document.TalentField{
		document.TalentContractDuration,
		document.TalentBillRate,
		document.TalentStandardTimeBR,
		document.TalentOverTimeBR,
	} {
		doc, err = document.SetTalentField(doc, "1", "t1", tf, "12")
		if err != nil {
			t.Fatalf("fill talent field: %v", err)
		}
	}
	return doc
}

func TestEmptyDocumentReportsEveryRequiredField(t *testing.T) {
	errs := Check(document.PurchaseOrder{})
	wantKeys := []string{
		"clientName", "purchaseOrderType", "purchaseOrderNo", "receivedOn",
		"receivedFromName", "poStartDate", "poEndDate", "budget",
	}
	for _, key := range wantKeys {
		if _, ok := errs[key]; !ok {
			t.Fatalf("missing required-field error for %s in %v", key, errs)
		}
	}
	if _, ok := errs["receivedFromEmail"]; ok {
		t.Fatalf("empty email must not produce an error")
	}
	if errs["clientName"] != "Client Name is required" {
		t.Fatalf("unexpected message: %q", errs["clientName"])
	}
	if errs["receivedOn"] != "Received On date is required" {
		t.Fatalf("unexpected message: %q", errs["receivedOn"])
	}
}

func TestValidIndividualDocumentIsClean(t *testing.T) {
	doc := filledDoc(t, document.OrderTypeIndividual)
	if errs := Check(doc); len(errs) != 0 {
		t.Fatalf("expected clean document, got %v", errs)
	}
}

func TestEmailShape(t *testing.T) {
	doc := filledDoc(t, document.OrderTypeIndividual)
	doc = document.SetField(doc, document.FieldReceivedFromEmail, "not-an-email")
	errs := Check(doc)
	if errs["receivedFromEmail"] != "Please enter a valid email address" {
		t.Fatalf("unexpected email error: %v", errs)
	}
	doc = document.SetField(doc, document.FieldReceivedFromEmail, "priya@collabara.com")
	if errs := Check(doc); len(errs) != 0 {
		t.Fatalf("valid email rejected: %v", errs)
	}
}

func TestBudgetShape(t *testing.T) {
	doc := filledDoc(t, document.OrderTypeIndividual)
	for _, bad := range []string{"123456", "12a4", "12.50", "-100"} {
		errs := Check(document.SetField(doc, document.FieldBudget, bad))
		if errs["budget"] != "Budget must be numeric with maximum 5 digits" {
			t.Fatalf("budget %q: unexpected errors %v", bad, errs)
		}
	}
	errs := Check(document.SetField(doc, document.FieldBudget, "99999"))
	if _, ok := errs["budget"]; ok {
		t.Fatalf("five digits must pass: %v", errs)
	}
}

func TestEndDateBeforeStartDate(t *testing.T) {
	doc := filledDoc(t, document.OrderTypeIndividual)
	doc = document.SetField(doc, document.FieldStartDate, "2025-06-01")
	doc = document.SetField(doc, document.FieldEndDate, "2025-05-01")
	errs := Check(doc)
	if errs["poEndDate"] != "PO End Date cannot be before PO Start Date" {
		t.Fatalf("unexpected date errors: %v", errs)
	}
	doc = document.SetField(doc, document.FieldEndDate, "2025-06-01")
	if errs := Check(doc); len(errs) != 0 {
		t.Fatalf("equal dates must pass: %v", errs)
	}
}

func TestSelectionCountRules(t *testing.T) {
	// Group with a single selection is short one talent.
	doc := filledDoc(t, document.OrderTypeGroup)
	errs := Check(doc)
	if errs[KeyTalentSelection] != "Group PO requires at least two talents to be selected" {
		t.Fatalf("unexpected group error: %v", errs)
	}

	// Selecting the second talent satisfies the group rule.
	doc, err := selection.Toggle(doc, "1", "t2")
	if err != nil {
		t.Fatalf("select t2: %v", err)
	}
	for _, tf := range []document.TalentField{
		document.TalentContractDuration,
		document.TalentBillRate,
		document.TalentStandardTimeBR,
		document.TalentOverTimeBR,
	} {
		doc, _ = document.SetTalentField(doc, "1", "t2", tf, "6")
	}
	if errs := Check(doc); len(errs) != 0 {
		t.Fatalf("two-talent group must pass: %v", errs)
	}

	// The same two selections under individual break the exclusivity rule.
	doc = document.SetField(doc, document.FieldOrderType, string(document.OrderTypeIndividual))
	errs = Check(doc)
	if errs[KeyTalentSelection] != "Individual PO allows selection of only one talent" {
		t.Fatalf("unexpected individual error: %v", errs)
	}
}

func TestSelectedTalentRateFieldsRequired(t *testing.T) {
	doc := filledDoc(t, document.OrderTypeIndividual)
	doc, err := document.SetTalentField(doc, "1", "t1", document.TalentBillRate, "")
	if err != nil {
		t.Fatalf("clear bill rate: %v", err)
	}
	errs := Check(doc)
	key := TalentKey("t1", document.TalentBillRate)
	if errs[key] != "Bill Rate is required for Monika Goyal Test" {
		t.Fatalf("unexpected talent error: %v", errs)
	}

	// Deselected talents are never checked.
	doc, err = selection.Toggle(doc, "1", "t1")
	if err != nil {
		t.Fatalf("deselect: %v", err)
	}
	errs = Check(doc)
	if _, ok := errs[key]; ok {
		t.Fatalf("deselected talent must not be checked: %v", errs)
	}
}

func TestCheckIsDeterministic(t *testing.T) {
	doc := document.SetField(document.Seed(), document.FieldBudget, "123456")
	first := Check(doc)
	second := Check(doc)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated checks differ: %v vs %v", first, second)
	}
}

func TestExpandedFlagDoesNotAffectValidation(t *testing.T) {
	doc := filledDoc(t, document.OrderTypeIndividual)
	collapsed, err := document.ToggleSectionExpanded(doc, "1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !reflect.DeepEqual(Check(doc), Check(collapsed)) {
		t.Fatalf("expanded flag changed validation output")
	}
}

func TestRequiredPredicates(t *testing.T) {
	if !FieldRequired(document.FieldClientName) || !FieldRequired(document.FieldBudget) {
		t.Fatalf("required top-level fields misreported")
	}
	if FieldRequired(document.FieldReceivedFromEmail) || FieldRequired(document.FieldCurrency) {
		t.Fatalf("optional top-level fields misreported")
	}
	talent := document.Talent{Selected: true}
	if !TalentFieldRequired(talent, document.TalentContractDuration) {
		t.Fatalf("contract duration must be required for a selected talent")
	}
	if TalentFieldRequired(talent, document.TalentCurrency) {
		t.Fatalf("currency is never required")
	}
	talent.Selected = false
	if TalentFieldRequired(talent, document.TalentContractDuration) {
		t.Fatalf("deselected talent has no required fields")
	}
}
