package faturamento

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
)

// GerarPDF monta o relatório de faturamento em A4. O sintético lista só os grupos;
// o detalhado acrescenta uma tabela com cada apontamento.
func GerarPDF(r Resumo) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Relatório de Faturamento"), false)
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Relatório de Faturamento"), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Cliente: %s (%s)", r.Cliente.Nome, r.Cliente.Codigo)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr("CNPJ: "+r.Cliente.CNPJ), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Período: %s a %s", r.DataInicio, r.DataFim)), "", 1, "L", false, 0, "")
	tipo := "Detalhado"
	if r.TipoRelatorio == Sintetico {
		tipo = "Sintético"
	}
	pdf.CellFormat(0, 6, tr("Tipo: "+tipo), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// resumo por projeto / setor / tipo
	larguras := []float64{60, 40, 35, 20, 25}
	cabecalho(pdf, tr, larguras, "Projeto", "Setor", "Tipo", "Horas", "Valor")
	pdf.SetFont("Helvetica", "", 9)
	for _, g := range r.Grupos {
		linha(pdf, tr, larguras, g.Projeto, g.Setor, g.TipoServico, horas(g.Horas), moeda(g.Valor))
	}
	pdf.Ln(4)

	if r.TipoRelatorio == Detalhado && len(r.Apontamentos) > 0 {
		larguras = []float64{22, 35, 48, 25, 15, 15, 20}
		cabecalho(pdf, tr, larguras, "Data", "Consultor", "Descrição", "Setor", "Início", "Fim", "Valor")
		pdf.SetFont("Helvetica", "", 8)
		for _, a := range r.Apontamentos {
			consultor, setor := "", "-"
			if a.Consultor != nil {
				consultor = a.Consultor.Nome
			}
			if a.Setor != nil {
				setor = a.Setor.Descricao
			}
			linha(pdf, tr, larguras, a.Data, consultor, a.Descricao, setor, a.HoraInicio, a.HoraFim, moeda(a.TotalValor))
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Total de atividades: %d", r.TotalApontamentos)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 7, tr("Total de horas: "+horas(r.TotalHoras)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 7, tr("Valor total: "+moeda(r.TotalValor)), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("gerar pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func cabecalho(pdf *gofpdf.Fpdf, tr func(string) string, larguras []float64, colunas ...string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, c := range colunas {
		pdf.CellFormat(larguras[i], 7, tr(c), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)
}

func linha(pdf *gofpdf.Fpdf, tr func(string) string, larguras []float64, valores ...string) {
	for i, v := range valores {
		alinhamento := "L"
		if i == len(valores)-1 {
			alinhamento = "R"
		}
		pdf.CellFormat(larguras[i], 6, cortar(pdf, tr(v), larguras[i]-2), "1", 0, alinhamento, false, 0, "")
	}
	pdf.Ln(-1)
}

// cortar encurta o texto já traduzido (um byte por caractere) até caber na célula
func cortar(pdf *gofpdf.Fpdf, s string, largura float64) string {
	for len(s) > 0 && pdf.GetStringWidth(s) > largura {
		s = s[:len(s)-1]
	}
	return s
}

func horas(h float64) string { return fmt.Sprintf("%.2fh", h) }

func moeda(v float64) string { return fmt.Sprintf("R$ %.2f", v) }
