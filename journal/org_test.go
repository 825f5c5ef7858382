package journal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	trade := tradeFixture("AAPL", StatusOpen)
	trade.ID = "01HTQZXWABCDEFGHJKMNPQRSTV"

	out := FormatTradeOrg(trade)

	assert.True(t, strings.HasPrefix(out, "** Trade: AAPL (01HTQZXW)"))
	assert.Contains(t, out, ":TRADE_ID: 01HTQZXWABCDEFGHJKMNPQRSTV")
	assert.Contains(t, out, ":TICKER: AAPL")
	assert.Contains(t, out, ":ENTRY_PRICE: 150.50")
	assert.Contains(t, out, ":INITIAL_SL: 145.00")
	assert.Contains(t, out, ":CURRENT_SL: 145.00")
	assert.Contains(t, out, ":STATUS: open")
	assert.Contains(t, out, "*** Thesis")
	assert.Contains(t, out, "*** Execution")
	assert.Contains(t, out, "*** Review")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	trades := []Trade{
		tradeFixture("AAPL", StatusOpen),
		tradeFixture("MSFT", StatusClosed),
	}

	out := FormatTradesOrg(trades)
	assert.Equal(t, 2, strings.Count(out, "** Trade:"))
}

func TestShortID(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "12345678", shortID("123456789"))
}
