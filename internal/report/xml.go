package report

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

// XML STRUCTURE:
//
//   <fraudReport runId="..." source="ledger.csv" generatedAt="...">
//     <risk score="2.8" level="Medium" color="yellow"/>
//     <totalRows>3</totalRows>
//     <totalIndicators>4</totalIndicators>
//     <indicators>
//       <indicator label="DuplicateIds" count="2" weight="0.5">
//         <flaggedRows><row>0</row><row>1</row></flaggedRows>
//         <detail>"1" appears 2× in column "id"</detail>
//       </indicator>
//     </indicators>
//   </fraudReport>

type xmlReport struct {
	XMLName         xml.Name       `xml:"fraudReport"`
	RunID           string         `xml:"runId,attr"`
	Source          string         `xml:"source,attr"`
	GeneratedAt     string         `xml:"generatedAt,attr"`
	Risk            xmlRisk        `xml:"risk"`
	TotalRows       int            `xml:"totalRows"`
	TotalIndicators int            `xml:"totalIndicators"`
	Indicators      []xmlIndicator `xml:"indicators>indicator"`
}

type xmlRisk struct {
	Score float64 `xml:"score,attr"`
	Level string  `xml:"level,attr"`
	Color string  `xml:"color,attr"`
}

type xmlIndicator struct {
	Label   string   `xml:"label,attr"`
	Count   int      `xml:"count,attr"`
	Weight  float64  `xml:"weight,attr"`
	Rows    []int    `xml:"flaggedRows>row"`
	Details []string `xml:"detail"`
}

// writeXML renders the report as an indented XML document.
func writeXML(w io.Writer, rep *Report) error {
	r := rep.Result

	doc := xmlReport{
		RunID:       rep.RunID,
		Source:      rep.Source,
		GeneratedAt: rep.GeneratedAt.Format(time.RFC3339),
		Risk: xmlRisk{
			Score: r.RiskScore,
			Level: string(r.RiskLevel),
			Color: string(r.RiskColor),
		},
		TotalRows:       r.TotalRows,
		TotalIndicators: r.TotalIndicators,
	}

	for _, f := range r.Indicators {
		doc.Indicators = append(doc.Indicators, xmlIndicator{
			Label:   f.Label,
			Count:   f.Count,
			Weight:  f.Weight,
			Rows:    f.FlaggedRows,
			Details: f.Details,
		})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("failed to write XML report: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode XML report: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("failed to write XML report: %w", err)
	}
	return nil
}
