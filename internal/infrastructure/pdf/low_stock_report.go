// Package pdf implementa la generación del reporte PDF de alertas de stock
// bajo: la misma lista que expone GET /api/inventory/alerts, en formato
// imprimible para el encargado de reposición.
package pdf

import (
	"fmt"
	"strconv"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
)

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorCritical = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// LowStockReportGenerator genera el reporte de alertas usando Maroto v2.
type LowStockReportGenerator struct{}

// NewLowStockReportGenerator construye el generador.
func NewLowStockReportGenerator() *LowStockReportGenerator { return &LowStockReportGenerator{} }

// Generate genera el PDF del listado de alertas y devuelve sus bytes.
func (g *LowStockReportGenerator) Generate(alerts []dto.LowStockAlertDTO, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Alertas de stock bajo", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(len(alerts), generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, a := range alerts {
		m.AddRows(alertRow(a))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título del reporte + total y fecha de generación.
func headerRow(total int, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("ALERTAS DE STOCK BAJO", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d registros en o por debajo de su stock mínimo", total), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de alertas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tienda", 3, align.Left),
		h("Producto", 5, align.Left),
		h("Cantidad", 1, align.Right),
		h("Mínimo", 1, align.Right),
		h("Severidad", 2, align.Center),
	)
}

// alertRow: una fila por alerta; las críticas (cantidad 0) van en rojo.
func alertRow(a dto.LowStockAlertDTO) core.Row {
	severityColor := colorGray
	if a.Severity == "critical" {
		severityColor = colorCritical
	}
	return row.New(7).Add(
		col.New(3).Add(text.New(a.StoreID, props.Text{Size: 8, Top: 1})),
		col.New(5).Add(text.New(a.ProductID, props.Text{Size: 8, Top: 1})),
		col.New(1).Add(text.New(strconv.Itoa(a.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(1).Add(text.New(strconv.Itoa(a.MinStock), props.Text{Size: 8, Align: align.Right, Top: 1})),
		col.New(2).Add(text.New(a.Severity, props.Text{
			Size: 8, Align: align.Center, Top: 1, Style: fontstyle.Bold, Color: severityColor,
		})),
	)
}
