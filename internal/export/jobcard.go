// Package export generates the printable job card: a PDF with a plate
// overview, the material estimate, and one page per object listing its mesh
// type and overridden settings, plus a QR code with the override set for
// shop-floor traceability.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/PrintPrep/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// meshTypeColor maps mesh types to RGB colors, matching the plate canvas
// widget in the UI.
func meshTypeColor(t model.MeshType) (r, g, b int) {
	switch t {
	case model.MeshTypeSupport:
		return 0, 188, 212 // cyan
	case model.MeshTypeCutting:
		return 255, 152, 0 // orange
	case model.MeshTypeInfill:
		return 156, 39, 176 // purple
	case model.MeshTypeAntiOverhang:
		return 244, 67, 54 // red
	default:
		return 76, 175, 80 // green
	}
}

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	qrSize       = 30.0
)

// ObjectCard is the per-object data rendered onto a job card page.
type ObjectCard struct {
	Object    model.SceneObject `json:"object"`
	Overrides []OverrideEntry   `json:"overrides"`
}

// OverrideEntry is one overridden setting with its display label.
type OverrideEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
	Unit  string `json:"unit,omitempty"`
}

// BuildObjectCards collects the job card data from a project. known maps
// setting keys to descriptors for label and unit lookup; mesh-type marker
// keys are not listed as overrides.
func BuildObjectCards(p model.Project, known map[string]model.SettingDescriptor) []ObjectCard {
	markers := map[string]bool{}
	for _, k := range model.MeshTypeKeys() {
		markers[k] = true
	}

	var cards []ObjectCard
	for _, obj := range p.Objects {
		card := ObjectCard{Object: obj}
		for key, value := range p.Overrides[obj.ID] {
			if markers[key] {
				continue
			}
			entry := OverrideEntry{Key: key, Value: value}
			if d, ok := known[key]; ok {
				entry.Label = d.Label
				entry.Unit = d.Unit
			} else {
				entry.Label = key
			}
			card.Overrides = append(card.Overrides, entry)
		}
		sort.Slice(card.Overrides, func(i, j int) bool {
			return card.Overrides[i].Key < card.Overrides[j].Key
		})
		cards = append(cards, card)
	}
	return cards
}

// ExportJobCard generates the job card PDF: an overview page with the plate
// layout and material estimate, followed by one page per object.
func ExportJobCard(path string, p model.Project, machine model.Machine, cards []ObjectCard, estimate model.PrintEstimate) error {
	if len(cards) == 0 {
		return fmt.Errorf("no objects to export")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, marginBottom)

	pdf.AddPage()
	renderOverviewPage(pdf, p, machine, cards, estimate)

	for i, card := range cards {
		pdf.AddPage()
		if err := renderObjectPage(pdf, card, i+1); err != nil {
			return err
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderOverviewPage draws the plate layout and the material estimate.
func renderOverviewPage(pdf *fpdf.Fpdf, p model.Project, machine model.Machine, cards []ObjectCard, estimate model.PrintEstimate) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Job Card: %s — %s", p.Name, machine.Name)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Objects: %d | Filament: %.0f g (%.1f m) | Cost: %.2f | Time: %s",
		len(cards), estimate.TotalGrams, estimate.TotalLengthMM/1000.0, estimate.EstimatedCost,
		formatMinutes(estimate.PrintTimeMin))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 1, "L", false, 0, "")

	// Plate layout diagram, scaled to fit the upper half of the page
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := 120.0
	scale := math.Min(drawWidth/machine.PlateWidth, drawHeight/machine.PlateDepth)

	canvasW := machine.PlateWidth * scale
	canvasH := machine.PlateDepth * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := marginTop + headerHeight + 10

	pdf.SetFillColor(60, 60, 70)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, card := range cards {
		obj := card.Object
		r, g, b := meshTypeColor(obj.MeshType)
		pdf.SetFillColor(r, g, b)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(offsetX+obj.X*scale, offsetY+obj.Y*scale, obj.Width*scale, obj.Depth*scale, "FD")

		w := obj.Width * scale
		if w > 15 {
			pdf.SetFont("Helvetica", "", 7)
			pdf.SetTextColor(0, 0, 0)
			labelW := pdf.GetStringWidth(obj.Name)
			if labelW < w-2 {
				pdf.SetXY(offsetX+obj.X*scale+(w-labelW)/2, offsetY+obj.Y*scale+obj.Depth*scale/2-2)
				pdf.CellFormat(labelW, 4, obj.Name, "", 0, "C", false, 0, "")
			}
		}
	}

	// Legend
	pdf.SetTextColor(0, 0, 0)
	legendY := offsetY + canvasH + 8
	legendX := marginLeft
	for t := model.MeshTypeNormal; t <= model.MeshTypeAntiOverhang; t++ {
		r, g, b := meshTypeColor(t)
		pdf.SetFillColor(r, g, b)
		pdf.Rect(legendX, legendY, 4, 4, "F")
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetXY(legendX+5, legendY)
		pdf.CellFormat(28, 4, t.String(), "", 0, "L", false, 0, "")
		legendX += 36
	}
}

// renderObjectPage draws one object's card: header, dimensions, mesh type,
// overridden settings table, and the QR code.
func renderObjectPage(pdf *fpdf.Fpdf, card ObjectCard, pageNum int) error {
	obj := card.Object

	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-qrSize, headerHeight,
		fmt.Sprintf("Object %d: %s", pageNum, obj.Name), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	info := fmt.Sprintf("%.0f x %.0f x %.0f mm | Mesh type: %s",
		obj.Width, obj.Depth, obj.Height, obj.MeshType)
	pdf.CellFormat(pageWidth-marginLeft-marginRight-qrSize, 5, info, "", 1, "L", false, 0, "")

	// QR code with the full card data as JSON
	qrData, err := json.Marshal(card)
	if err != nil {
		return fmt.Errorf("failed to marshal card for %q: %w", obj.Name, err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code for %q: %w", obj.Name, err)
	}
	imgName := fmt.Sprintf("qr_%s", obj.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	pdf.ImageOptions(imgName, pageWidth-marginRight-qrSize, marginTop, qrSize, qrSize, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Overrides table
	tableY := marginTop + qrSize + 10
	pdf.SetXY(marginLeft, tableY)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(90, 7, "Setting", "B", 0, "L", false, 0, "")
	pdf.CellFormat(50, 7, "Value", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if len(card.Overrides) == 0 {
		pdf.SetX(marginLeft)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(140, 6, "No per-object overrides", "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		return nil
	}
	for _, entry := range card.Overrides {
		pdf.SetX(marginLeft)
		pdf.CellFormat(90, 6, entry.Label, "", 0, "L", false, 0, "")
		value := entry.Value
		if entry.Unit != "" {
			value += " " + entry.Unit
		}
		pdf.CellFormat(50, 6, value, "", 1, "L", false, 0, "")
	}
	return nil
}

func formatMinutes(min float64) string {
	h := int(min) / 60
	m := int(min) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
