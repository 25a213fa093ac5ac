package keys

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// specialAliases maps key names and symbols (lowercase) to their canonical
// base token. Every alias group collapses to one spelling so that
// "Return", "enter" and "CR" all land on "Enter".
var specialAliases = map[string]string{
	"enter":     "Enter",
	"return":    "Enter",
	"cr":        "Enter",
	"escape":    "Escape",
	"esc":       "Escape",
	"tab":       "Tab",
	"space":     "Space",
	"spc":       "Space",
	" ":         "Space",
	"backspace": "Backspace",
	"bs":        "Backspace",
	"delete":    "Delete",
	"del":       "Delete",
	"insert":    "Insert",
	"ins":       "Insert",
	"home":      "Home",
	"end":       "End",
	"pageup":    "PageUp",
	"pgup":      "PageUp",
	"prior":     "PageUp",
	"pagedown":  "PageDown",
	"pgdn":      "PageDown",
	"next":      "PageDown",

	"up":         "Up",
	"uparrow":    "Up",
	"arrowup":    "Up",
	"↑":          "Up",
	"down":       "Down",
	"downarrow":  "Down",
	"arrowdown":  "Down",
	"↓":          "Down",
	"left":       "Left",
	"leftarrow":  "Left",
	"arrowleft":  "Left",
	"←":          "Left",
	"right":      "Right",
	"rightarrow": "Right",
	"arrowright": "Right",
	"→":          "Right",

	",":          "Comma",
	"comma":      "Comma",
	".":          "Period",
	"period":     "Period",
	"dot":        "Period",
	"/":          "Slash",
	"slash":      "Slash",
	"\\":         "Backslash",
	"backslash":  "Backslash",
	"bslash":     "Backslash",
	";":          "Semicolon",
	"semicolon":  "Semicolon",
	"'":          "Quote",
	"quote":      "Quote",
	"apostrophe": "Quote",
	"minus":      "Minus",
	"dash":       "Minus",
	"hyphen":     "Minus",
	"-":          "Minus",
	"equal":      "Equal",
	"equals":     "Equal",
	"=":          "Equal",
	"plus":       "Plus",
	"+":          "Plus",
	"[":          "LeftBracket",
	"lbracket":   "LeftBracket",
	"]":          "RightBracket",
	"rbracket":   "RightBracket",
	"`":          "Grave",
	"grave":      "Grave",
	"backtick":   "Grave",
	"printscreen": "PrintScreen",
	"scrolllock":  "ScrollLock",
	"numlock":     "NumLock",
	"capslock":    "CapsLock",
	"pause":       "Pause",
}

// BaseFromToken returns the canonical base token for a raw key token.
// Recognized special keys resolve through the alias table, function keys
// keep their F-number, single letters uppercase, and unrecognized tokens
// pass through capitalized. Never fails.
func BaseFromToken(tok string) string {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return ""
	}

	lower := strings.ToLower(tok)
	if name, ok := specialAliases[lower]; ok {
		return name
	}
	if name, ok := functionKey(lower); ok {
		return name
	}

	if utf8.RuneCountInString(tok) == 1 {
		r, _ := utf8.DecodeRuneInString(tok)
		if unicode.IsLetter(r) {
			return string(unicode.ToUpper(r))
		}
		return tok
	}

	// Unrecognized multi-character token: capitalize for a stable form.
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}

// functionKey recognizes f1..f24 and returns the canonical "F<n>" form.
func functionKey(lower string) (string, bool) {
	if len(lower) < 2 || len(lower) > 3 || lower[0] != 'f' {
		return "", false
	}
	n := 0
	for _, r := range lower[1:] {
		if r < '0' || r > '9' {
			return "", false
		}
		n = n*10 + int(r-'0')
	}
	if n < 1 || n > 24 {
		return "", false
	}
	return "F" + strconv.Itoa(n), true
}
