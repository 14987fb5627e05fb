package notifier

import (
	"html"
	"strings"
	"unicode/utf16"

	"StockChat/internal/catalog"
)

// MaxMessageLen is Telegram's limit on one message, in UTF-16 code units.
const MaxMessageLen = 4096

// FormatReply escapes an assistant reply for Telegram's HTML parse mode and
// splits it into messages of at most MaxMessageLen. Entities are never split.
func FormatReply(reply string) []string {
	var (
		parts []string
		b     strings.Builder
		n     int
	)
	for _, r := range reply {
		esc := html.EscapeString(string(r))
		size := 0
		for _, er := range esc {
			if l := utf16.RuneLen(er); l > 0 {
				size += l
			} else {
				size++
			}
		}
		if n+size > MaxMessageLen {
			parts = append(parts, b.String())
			b.Reset()
			n = 0
		}
		b.WriteString(esc)
		n += size
	}
	if b.Len() > 0 {
		parts = append(parts, b.String())
	}
	return parts
}

// FormatWelcome formats the greeting shown when a chat starts.
func FormatWelcome() string {
	var b strings.Builder
	b.WriteString("📊 <b>Stock Analysis Chatbot</b>\n\n")
	b.WriteString("The Chatbot Can Answer Questions About:\n")
	for _, t := range catalog.Topics {
		b.WriteString("• " + html.EscapeString(t) + "\n")
	}
	b.WriteString("\n<i>e.g. What is the stock price of Microsoft?</i>")
	return b.String()
}
