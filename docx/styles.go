package docx

import (
	"bytes"
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Style lookups match on local names so they do not depend on the prefix a
// producer chose for the WordprocessingML namespace.
var (
	styleExpr     = xpath.MustCompile(`//*[local-name()='styles']/*[local-name()='style']`)
	styleNameExpr = xpath.MustCompile(`*[local-name()='name']`)
)

// styleTable maps paragraph style IDs to display names from word/styles.xml.
type styleTable map[string]string

func (t styleTable) name(id string) string {
	if t == nil || id == "" {
		return ""
	}
	return t[id]
}

// parseStyleTable parses the styles definition file.
func parseStyleTable(data []byte) (styleTable, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", StylesPart, err)
	}

	table := make(styleTable)
	for _, n := range xmlquery.QuerySelectorAll(doc, styleExpr) {
		id := attrValue(n, "styleId")
		if id == "" {
			continue
		}
		// character, table and numbering styles never apply to w:pStyle
		if typ := attrValue(n, "type"); typ != "" && typ != "paragraph" {
			continue
		}
		if nameNode := xmlquery.QuerySelector(n, styleNameExpr); nameNode != nil {
			table[id] = attrValue(nameNode, "val")
		}
	}
	return table, nil
}

// attrValue returns the value of the first attribute with the given local name.
func attrValue(n *xmlquery.Node, local string) string {
	for _, a := range n.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}
