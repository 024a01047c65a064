// Package fa3 emits the FA(3) invoice XML schema used by KSeF, using
// encoding/xml over ordered, tagged structs. Child order is mandatory for
// this schema, so field order in these structs is the contract.
package fa3

import "encoding/xml"

// Namespace is the FA(3) document namespace.
const Namespace = "http://crd.gov.pl/wzor/2025/06/25/13775/"

// Faktura is the document root.
type Faktura struct {
	XMLName  xml.Name `xml:"Faktura"`
	Xmlns    string   `xml:"xmlns,attr"`
	Naglowek Naglowek `xml:"Naglowek"`
	Podmiot1 Podmiot1 `xml:"Podmiot1"`
	Podmiot2 Podmiot2 `xml:"Podmiot2"`
	Fa       Fa       `xml:"Fa"`
}

// Naglowek is the document header.
type Naglowek struct {
	KodFormularza     KodFormularza `xml:"KodFormularza"`
	WariantFormularza int           `xml:"WariantFormularza"`
	DataWytworzeniaFa string        `xml:"DataWytworzeniaFa"`
	SystemInfo        string        `xml:"SystemInfo"`
}

// KodFormularza carries the fixed kodSystemowy/wersjaSchemy attributes.
type KodFormularza struct {
	KodSystemowy  string `xml:"kodSystemowy,attr"`
	WersjaSchemy  string `xml:"wersjaSchemy,attr"`
	Value         string `xml:",chardata"`
}

// DaneIdentyfikacyjne is the NIP+Nazwa pair shared by both parties.
type DaneIdentyfikacyjne struct {
	NIP   string `xml:"NIP"`
	Nazwa string `xml:"Nazwa"`
}

// Adres is a single-line, country-coded address: one assembled line,
// "<street>, <postal_code> <city>" with empty parts elided.
type Adres struct {
	KodKraju string `xml:"KodKraju"`
	AdresL1  string `xml:"AdresL1"`
}

// DaneKontaktowe is emitted only as a whole group when at least one of its
// fields is present.
type DaneKontaktowe struct {
	Email   string `xml:"Email,omitempty"`
	Telefon string `xml:"Telefon,omitempty"`
}

// Podmiot1 is the seller block. Adres is required, DaneKontaktowe optional.
type Podmiot1 struct {
	DaneIdentyfikacyjne DaneIdentyfikacyjne `xml:"DaneIdentyfikacyjne"`
	Adres               Adres               `xml:"Adres"`
	DaneKontaktowe      *DaneKontaktowe     `xml:"DaneKontaktowe,omitempty"`
}

// Podmiot2 is the buyer block. Adres is optional; JST/GV are fixed flags,
// always emitted as constant 2.
type Podmiot2 struct {
	DaneIdentyfikacyjne DaneIdentyfikacyjne `xml:"DaneIdentyfikacyjne"`
	Adres               *Adres              `xml:"Adres,omitempty"`
	JST                 int                 `xml:"JST"`
	GV                  int                 `xml:"GV"`
}

// Fa is the invoice body.
type Fa struct {
	KodWaluty string `xml:"KodWaluty"`
	P1        string `xml:"P_1"`
	P2        string `xml:"P_2"`
	P6        string `xml:"P_6"`

	P13_1   string `xml:"P_13_1,omitempty"`
	P14_1   string `xml:"P_14_1,omitempty"`
	P13_2   string `xml:"P_13_2,omitempty"`
	P14_2   string `xml:"P_14_2,omitempty"`
	P13_3   string `xml:"P_13_3,omitempty"`
	P14_3   string `xml:"P_14_3,omitempty"`
	P13_6_1 string `xml:"P_13_6_1,omitempty"`
	P13_7   string `xml:"P_13_7,omitempty"`
	P13_8   string `xml:"P_13_8,omitempty"`

	P15 string `xml:"P_15"`

	Adnotacje Adnotacje `xml:"Adnotacje"`

	RodzajFaktury string     `xml:"RodzajFaktury"`
	FaWiersz      []FaWiersz `xml:"FaWiersz"`
}

// Adnotacje carries the fixed required flags and the conditional exemption
// choice.
type Adnotacje struct {
	P16                  int                  `xml:"P_16"`
	P17                  int                  `xml:"P_17"`
	P18                  int                  `xml:"P_18"`
	P18A                 int                  `xml:"P_18A"`
	Zwolnienie           Zwolnienie           `xml:"Zwolnienie"`
	NoweSrodkiTransportu NoweSrodkiTransportu `xml:"NoweSrodkiTransportu"`
	P23                  int                  `xml:"P_23"`
	PMarzy               PMarzy               `xml:"PMarzy"`
}

// Zwolnienie is the exempt/non-exempt choice. Exactly one of the two shapes
// is populated by Build, never both. P_19C is hard-coded to "zw"; no
// legal-basis reference is captured.
type Zwolnienie struct {
	P19  int    `xml:"P_19,omitempty"`
	P19C string `xml:"P_19C,omitempty"`
	P19N int    `xml:"P_19N,omitempty"`
}

// NoweSrodkiTransportu is always the "not applicable" subgroup for this
// core; new-means-of-transport annotations are not modeled.
type NoweSrodkiTransportu struct {
	P22N int `xml:"P_22N"`
}

// PMarzy is always the "not applicable" margin-scheme subgroup;
// margin-scheme invoices are not modeled.
type PMarzy struct {
	PPMarzyN int `xml:"P_PMarzyN"`
}

// FaWiersz is a single invoice line.
type FaWiersz struct {
	NrWierszaFa int    `xml:"NrWierszaFa"`
	P7          string `xml:"P_7"`
	P8A         string `xml:"P_8A"`
	P8B         string `xml:"P_8B"`
	P9A         string `xml:"P_9A"`
	P11         string `xml:"P_11"`
	P12         string `xml:"P_12"`
}
