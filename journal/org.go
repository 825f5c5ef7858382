// journal/org.go
package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a trade as an Org-mode block suitable for
// pasting into review notes. Structured facts live in a PROPERTIES
// drawer for easy search; the narrative sections stay blank on purpose.
func FormatTradeOrg(t Trade) string {
	heading := fmt.Sprintf("** Trade: %s (%s)", t.Ticker, shortID(t.ID))
	created := t.CreatedAt.UTC().Format(time.RFC3339)
	updated := t.UpdatedAt.UTC().Format(time.RFC3339)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":TICKER: %s\n", t.Ticker))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %s\n", t.EntryPrice.String()))
	b.WriteString(fmt.Sprintf(":INITIAL_SL: %s\n", t.InitialSL.String()))
	b.WriteString(fmt.Sprintf(":CURRENT_SL: %s\n", t.CurrentSL.String()))
	b.WriteString(fmt.Sprintf(":STATUS: %s\n", t.Status))
	b.WriteString(fmt.Sprintf(":CREATED: %s\n", created))
	b.WriteString(fmt.Sprintf(":UPDATED: %s\n", updated))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
