package fa3

import (
	"fmt"
	"strings"
	"time"

	"github.com/biter777/countries"
	"github.com/google/uuid"
	"github.com/kpalka/fakturaapp/money"
	"golang.org/x/text/unicode/norm"
)

// Party is the normalised input for a Podmiot1/Podmiot2 block.
type Party struct {
	NIP        string
	Name       string
	Street     string
	PostalCode string
	City       string
	Country    string // free text; "" or an unrecognised name becomes "PL"
	Email      string
	Phone      string
}

// Line is a single invoice line, already through money.ComputeLineAmounts.
type Line struct {
	Name            string
	Unit            string
	Quantity        string // canonical decimal string
	UnitPriceGrosze int64
	Rate            money.VATRate
	Amounts         money.LineAmounts
}

// Input is everything Build needs to produce a Faktura document.
type Input struct {
	Currency      string
	IssueDate     string // YYYY-MM-DD
	SaleDate      string // YYYY-MM-DD
	InvoiceNumber string
	Seller        Party
	Buyer         Party
	Lines         []Line
	Totals        money.InvoiceTotals
	SystemInfo    string // defaults to a uuid-suffixed producer string if empty
	Now           time.Time
}

// Build assembles a Faktura document from validated, already-computed
// invoice data. Beyond summing line amounts into the per-rate totals and
// rejecting a VAT rate it has no field for, it performs no arithmetic or
// validation; both are the caller's responsibility. The buyer's Adres is
// omitted when its street, postal code and city are all empty.
func Build(in Input) (*Faktura, error) {
	systemInfo := in.SystemInfo
	if systemInfo == "" {
		systemInfo = "invoicecore/" + uuid.NewString()
	}

	seller, err := buildParty(in.Seller, true)
	if err != nil {
		return nil, err
	}
	buyer, err := buildParty(in.Buyer, false)
	if err != nil {
		return nil, err
	}

	fa, err := buildFa(in)
	if err != nil {
		return nil, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	doc := &Faktura{
		Xmlns: Namespace,
		Naglowek: Naglowek{
			KodFormularza: KodFormularza{
				KodSystemowy: "FA (3)",
				WersjaSchemy: "1-0E",
				Value:        "FA",
			},
			WariantFormularza: 3,
			DataWytworzeniaFa: now.Format("2006-01-02T15:04:05Z"),
			SystemInfo:        systemInfo,
		},
		Podmiot1: Podmiot1{
			DaneIdentyfikacyjne: DaneIdentyfikacyjne{NIP: seller.nip, Nazwa: seller.name},
			Adres:               seller.adres,
			DaneKontaktowe:      seller.kontakt,
		},
		Podmiot2: Podmiot2{
			DaneIdentyfikacyjne: DaneIdentyfikacyjne{NIP: buyer.nip, Nazwa: buyer.name},
			Adres:               buyer.adresPtr,
			JST:                 2,
			GV:                  2,
		},
		Fa: *fa,
	}
	return doc, nil
}

type builtParty struct {
	nip      string
	name     string
	adres    Adres
	adresPtr *Adres
	kontakt  *DaneKontaktowe
}

func buildParty(p Party, addressRequired bool) (builtParty, error) {
	bp := builtParty{nip: p.NIP, name: normaliseText(p.Name)}

	line1 := assembleAddressLine(p.Street, p.PostalCode, p.City)
	if line1 != "" || addressRequired {
		code := countryCode(p.Country)
		adres := Adres{KodKraju: code, AdresL1: line1}
		bp.adres = adres
		bp.adresPtr = &adres
	}

	if p.Email != "" || p.Phone != "" {
		bp.kontakt = &DaneKontaktowe{Email: p.Email, Telefon: p.Phone}
	}
	return bp, nil
}

// assembleAddressLine builds "<street>, <postal_code> <city>" eliding empty
// parts into a single address line.
func assembleAddressLine(street, postalCode, city string) string {
	var tail string
	switch {
	case postalCode != "" && city != "":
		tail = postalCode + " " + city
	case postalCode != "":
		tail = postalCode
	case city != "":
		tail = city
	}
	switch {
	case street != "" && tail != "":
		return street + ", " + tail
	case street != "":
		return street
	default:
		return tail
	}
}

// countryCode normalises a free-text country name/code to its ISO alpha-2
// form, defaulting to Poland.
func countryCode(raw string) string {
	if raw == "" {
		return "PL"
	}
	c := countries.ByName(raw)
	if c == countries.Unknown {
		return "PL"
	}
	return c.Alpha2()
}

// normaliseText applies NFC normalisation so combining-character Polish
// diacritics serialise consistently regardless of input form.
func normaliseText(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func buildFa(in Input) (*Fa, error) {
	fa := &Fa{
		KodWaluty:     in.Currency,
		P1:            in.IssueDate,
		P2:            in.InvoiceNumber,
		P6:            in.SaleDate,
		P15:           money.FormatMoney(in.Totals.TotalGrosze),
		RodzajFaktury: "VAT",
	}

	var net23, vat23, net8, vat8, net5, vat5, net0, netZW, netNP int64
	var used23, used8, used5, used0, usedZW, usedNP bool

	for i, line := range in.Lines {
		fa.FaWiersz = append(fa.FaWiersz, FaWiersz{
			NrWierszaFa: i + 1,
			P7:          normaliseText(line.Name),
			P8A:         normaliseText(line.Unit),
			P8B:         line.Quantity,
			P9A:         money.FormatMoney(line.UnitPriceGrosze),
			P11:         money.FormatMoney(line.Amounts.NetGrosze),
			P12:         line.Rate.FA3Tag(),
		})

		if line.Rate.IsExempt() {
			switch line.Rate.String() {
			case "ZW":
				usedZW = true
				netZW += line.Amounts.NetGrosze
			case "NP":
				usedNP = true
				netNP += line.Amounts.NetGrosze
			}
			continue
		}
		switch line.Rate.Percent() {
		case 23:
			used23 = true
			net23 += line.Amounts.NetGrosze
			vat23 += line.Amounts.VATGrosze
		case 8:
			used8 = true
			net8 += line.Amounts.NetGrosze
			vat8 += line.Amounts.VATGrosze
		case 5:
			used5 = true
			net5 += line.Amounts.NetGrosze
			vat5 += line.Amounts.VATGrosze
		case 0:
			used0 = true
			net0 += line.Amounts.NetGrosze
		default:
			return nil, fmt.Errorf("fa3: unsupported vat rate %q", line.Rate.String())
		}
	}

	if used23 {
		fa.P13_1, fa.P14_1 = money.FormatMoney(net23), money.FormatMoney(vat23)
	}
	if used8 {
		fa.P13_2, fa.P14_2 = money.FormatMoney(net8), money.FormatMoney(vat8)
	}
	if used5 {
		fa.P13_3, fa.P14_3 = money.FormatMoney(net5), money.FormatMoney(vat5)
	}
	if used0 {
		fa.P13_6_1 = money.FormatMoney(net0)
	}
	if usedZW {
		fa.P13_7 = money.FormatMoney(netZW)
	}
	if usedNP {
		fa.P13_8 = money.FormatMoney(netNP)
	}

	fa.Adnotacje = Adnotacje{
		P16: 2, P17: 2, P18: 2, P18A: 2,
		NoweSrodkiTransportu: NoweSrodkiTransportu{P22N: 1},
		P23:                  2,
		PMarzy:               PMarzy{PPMarzyN: 1},
	}
	if usedZW {
		fa.Adnotacje.Zwolnienie = Zwolnienie{P19: 1, P19C: "zw"}
	} else {
		fa.Adnotacje.Zwolnienie = Zwolnienie{P19N: 1}
	}

	return fa, nil
}
