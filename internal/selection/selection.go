// Package selection enforces the order-type selection rule: an individual
// purchase order never carries more than one selected talent, a group order
// allows any number and leaves the count to the validator.
package selection

import (
	"github.com/podraft/podraft/internal/document"
)

// Toggle flips the targeted talent's selection and returns the new document.
//
// Under an individual order every other talent is deselected in the same
// transition, so the single-selection invariant is never transiently
// violated. Under a group (or unset) order only the target changes.
//
// Switching the order type itself does not clear prior selections; the rule
// re-applies on the next toggle, and a save in between trips the
// selection-count validation instead.
func Toggle(po document.PurchaseOrder, sectionID, talentID string) (document.PurchaseOrder, error) {
	if _, err := po.Talent(sectionID, talentID); err != nil {
		return po, err
	}
	out := po.Clone()
	if po.OrderType == document.OrderTypeIndividual {
		for s := range out.Sections {
			for t := range out.Sections[s].Talents {
				talent := &out.Sections[s].Talents[t]
				if talent.ID == talentID {
					talent.Selected = !talent.Selected
				} else {
					talent.Selected = false
				}
			}
		}
		return out, nil
	}
	for s := range out.Sections {
		if out.Sections[s].ID != sectionID {
			continue
		}
		for t := range out.Sections[s].Talents {
			talent := &out.Sections[s].Talents[t]
			if talent.ID == talentID {
				talent.Selected = !talent.Selected
			}
		}
	}
	return out, nil
}

// Selected flattens the selected talents across all sections in document
// order.
func Selected(po document.PurchaseOrder) []document.Talent {
	var out []document.Talent
	for _, section := range po.Sections {
		for _, talent := range section.Talents {
			if talent.Selected {
				out = append(out, talent)
			}
		}
	}
	return out
}

// Count reports how many talents are currently selected.
func Count(po document.PurchaseOrder) int {
	return len(Selected(po))
}
