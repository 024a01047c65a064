package money

import "github.com/kpalka/fakturaapp/errs"

// VATRate is the tagged value on a line item: one of four numeric
// percentages or two alphabetic markers, modeled as an explicit Go variant
// rather than a loosely-typed string.
type VATRate struct {
	numeric bool
	percent int    // valid when numeric
	tag     string // "ZW" or "NP", valid when !numeric
}

var (
	VATRate23 = VATRate{numeric: true, percent: 23}
	VATRate8  = VATRate{numeric: true, percent: 8}
	VATRate5  = VATRate{numeric: true, percent: 5}
	VATRate0  = VATRate{numeric: true, percent: 0}
	VATRateZW = VATRate{tag: "ZW"}
	VATRateNP = VATRate{tag: "NP"}
)

// ParseVATRate accepts "23", "8", "5", "0", "ZW" or "NP" and returns the
// matching variant.
func ParseVATRate(s string) (VATRate, error) {
	switch s {
	case "23":
		return VATRate23, nil
	case "8":
		return VATRate8, nil
	case "5":
		return VATRate5, nil
	case "0":
		return VATRate0, nil
	case "ZW":
		return VATRateZW, nil
	case "NP":
		return VATRateNP, nil
	default:
		return VATRate{}, errs.New(errs.Validation, "invalid VAT rate tag: %q", s)
	}
}

// IsNumeric reports whether the rate is one of the numeric percentages.
func (r VATRate) IsNumeric() bool { return r.numeric }

// Percent returns the numeric percentage. Only meaningful when IsNumeric.
func (r VATRate) Percent() int { return r.percent }

// IsExempt reports whether the rate is a zero-VAT alphabetic marker.
func (r VATRate) IsExempt() bool { return !r.numeric }

// String renders the rate the way it is stored in the database column.
func (r VATRate) String() string {
	if r.numeric {
		switch r.percent {
		case 23:
			return "23"
		case 8:
			return "8"
		case 5:
			return "5"
		default:
			return "0"
		}
	}
	return r.tag
}

// FA3Tag returns the P_12 text used on a FaWiersz line.
func (r VATRate) FA3Tag() string {
	if !r.numeric {
		if r.tag == "ZW" {
			return "zw"
		}
		return "np I"
	}
	switch r.percent {
	case 23:
		return "23"
	case 8:
		return "8"
	case 5:
		return "5"
	default:
		return "0 KR"
	}
}
