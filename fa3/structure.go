package fa3

import (
	"fmt"

	"github.com/beevik/etree"
)

// requiredPaths are the element paths that must exist exactly once in any
// document Build produces, checked before the (expensive, external) XSD
// validator runs. This is a cheap structural sanity net, not a schema
// replacement; it catches a broken codec change before it reaches the
// validator subprocess.
var requiredPaths = []string{
	"./Naglowek/KodFormularza",
	"./Naglowek/WariantFormularza",
	"./Naglowek/DataWytworzeniaFa",
	"./Podmiot1/DaneIdentyfikacyjne/NIP",
	"./Podmiot1/Adres/KodKraju",
	"./Podmiot2/DaneIdentyfikacyjne/NIP",
	"./Fa/KodWaluty",
	"./Fa/P_1",
	"./Fa/P_2",
	"./Fa/P_6",
	"./Fa/P_15",
	"./Fa/Adnotacje",
	"./Fa/RodzajFaktury",
}

// CheckStructure parses raw XML with an XPath-capable tree and confirms the
// fixed set of mandatory elements is present exactly once.
func CheckStructure(raw []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return fmt.Errorf("fa3: parse for structural check: %w", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "Faktura" {
		return fmt.Errorf("fa3: document root is not Faktura")
	}
	for _, path := range requiredPaths {
		els := root.FindElements(path)
		if len(els) != 1 {
			return fmt.Errorf("fa3: expected exactly one %s, found %d", path, len(els))
		}
	}
	rows := root.FindElements("./Fa/FaWiersz")
	if len(rows) == 0 {
		return fmt.Errorf("fa3: invoice has no FaWiersz lines")
	}
	return nil
}
