package output

import (
	"fmt"
	"time"

	"github.com/micmonay/keybd_event"
)

// sendPaste issues a Ctrl+V keystroke.
func sendPaste() error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	kb.HasCTRL(true)
	kb.SetKeys(keybd_event.VK_V)
	return kb.Launching()
}

// typeText injects text as individual keystrokes. The mapping assumes a US
// layout; characters without a mapping are counted and reported but do not
// abort the injection.
func typeText(text string) error {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return err
	}
	skipped := 0
	for _, r := range text {
		key, shift, ok := keyForRune(r)
		if !ok {
			skipped++
			continue
		}
		kb.Clear()
		kb.HasSHIFT(shift)
		kb.SetKeys(key)
		if err := kb.Launching(); err != nil {
			return err
		}
		time.Sleep(3 * time.Millisecond)
	}
	if skipped > 0 {
		fmt.Printf("[output] %d characters had no keystroke mapping\n", skipped)
	}
	return nil
}

// keyForRune maps a rune to a virtual key and shift state.
func keyForRune(r rune) (key int, shift, ok bool) {
	if k, ok := plainKeys[r]; ok {
		return k, false, true
	}
	if k, ok := shiftKeys[r]; ok {
		return k, true, true
	}
	if r >= 'a' && r <= 'z' {
		return letterKeys[r-'a'], false, true
	}
	if r >= 'A' && r <= 'Z' {
		return letterKeys[r-'A'], true, true
	}
	if r >= '0' && r <= '9' {
		return digitKeys[r-'0'], false, true
	}
	return 0, false, false
}

var letterKeys = [26]int{
	keybd_event.VK_A, keybd_event.VK_B, keybd_event.VK_C, keybd_event.VK_D,
	keybd_event.VK_E, keybd_event.VK_F, keybd_event.VK_G, keybd_event.VK_H,
	keybd_event.VK_I, keybd_event.VK_J, keybd_event.VK_K, keybd_event.VK_L,
	keybd_event.VK_M, keybd_event.VK_N, keybd_event.VK_O, keybd_event.VK_P,
	keybd_event.VK_Q, keybd_event.VK_R, keybd_event.VK_S, keybd_event.VK_T,
	keybd_event.VK_U, keybd_event.VK_V, keybd_event.VK_W, keybd_event.VK_X,
	keybd_event.VK_Y, keybd_event.VK_Z,
}

var digitKeys = [10]int{
	keybd_event.VK_0, keybd_event.VK_1, keybd_event.VK_2, keybd_event.VK_3,
	keybd_event.VK_4, keybd_event.VK_5, keybd_event.VK_6, keybd_event.VK_7,
	keybd_event.VK_8, keybd_event.VK_9,
}

var plainKeys = map[rune]int{
	' ':  keybd_event.VK_SPACE,
	'\n': keybd_event.VK_ENTER,
	'\t': keybd_event.VK_TAB,
	'-':  keybd_event.VK_SP1,
	'=':  keybd_event.VK_SP2,
	'[':  keybd_event.VK_SP3,
	']':  keybd_event.VK_SP4,
	';':  keybd_event.VK_SP5,
	'\'': keybd_event.VK_SP6,
	'`':  keybd_event.VK_SP7,
	'\\': keybd_event.VK_SP8,
	',':  keybd_event.VK_SP9,
	'.':  keybd_event.VK_SP10,
	'/':  keybd_event.VK_SP11,
}

var shiftKeys = map[rune]int{
	'!': keybd_event.VK_1,
	'@': keybd_event.VK_2,
	'#': keybd_event.VK_3,
	'$': keybd_event.VK_4,
	'%': keybd_event.VK_5,
	'^': keybd_event.VK_6,
	'&': keybd_event.VK_7,
	'*': keybd_event.VK_8,
	'(': keybd_event.VK_9,
	')': keybd_event.VK_0,
	'_': keybd_event.VK_SP1,
	'+': keybd_event.VK_SP2,
	'{': keybd_event.VK_SP3,
	'}': keybd_event.VK_SP4,
	':': keybd_event.VK_SP5,
	'"': keybd_event.VK_SP6,
	'~': keybd_event.VK_SP7,
	'|': keybd_event.VK_SP8,
	'<': keybd_event.VK_SP9,
	'>': keybd_event.VK_SP10,
	'?': keybd_event.VK_SP11,
}
