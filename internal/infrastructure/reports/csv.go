// Package reports grava os extratos exportados no diretório público.
package reports

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/rafabene/carteira-backend/internal/domain/entities"
)

const dateLayout = "02/01/2006"

// CSVRenderer gera o extrato em CSV separado por ponto e vírgula
type CSVRenderer struct{}

func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

func (CSVRenderer) Extension() string {
	return ".csv"
}

func (CSVRenderer) Render(statement *entities.Statement) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	period := "Todo o período"
	switch {
	case statement.From != nil && statement.To != nil:
		period = statement.From.Format(dateLayout) + " a " + statement.To.Format(dateLayout)
	case statement.From != nil:
		period = "A partir de " + statement.From.Format(dateLayout)
	case statement.To != nil:
		period = "Até " + statement.To.Format(dateLayout)
	}

	rows := [][]string{
		{"Extrato", statement.WalletName},
		{"Titular", statement.UserName},
		{"Período", period},
		{"Gerado em", statement.GeneratedAt.Format("02/01/2006 15:04")},
		{},
		{"Data", "Tipo", "Categoria", "Forma de pagamento", "Descrição", "Valor", "Status"},
	}
	for _, line := range statement.Lines {
		rows = append(rows, []string{
			line.Date.Format(dateLayout),
			string(line.Type),
			line.Category,
			line.PaymentMethod,
			line.Description,
			line.Amount.String(),
			string(line.Status),
		})
	}
	rows = append(rows,
		[]string{},
		[]string{"Total de receitas", statement.Totals.Income.String()},
		[]string{"Total de despesas", statement.Totals.Expense.String()},
		[]string{"Saldo", statement.Balance.String()},
	)

	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
