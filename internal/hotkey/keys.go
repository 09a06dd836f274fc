package hotkey

import (
	"fmt"
	"strconv"
	"strings"

	"golang.design/x/hotkey"
)

// parseSpec accepts strings like "ctrl+shift+space", "alt+q" or "f13" and
// returns the modifier set and key. The last token is the key; the rest are
// modifiers.
func parseSpec(s string) ([]hotkey.Modifier, hotkey.Key, error) {
	if strings.TrimSpace(s) == "" {
		return nil, 0, fmt.Errorf("empty hotkey spec")
	}
	parts := strings.Split(s, "+")
	for i := range parts {
		parts[i] = strings.TrimSpace(strings.ToLower(parts[i]))
	}

	keyToken := parts[len(parts)-1]
	var mods []hotkey.Modifier
	for _, p := range parts[:len(parts)-1] {
		m, ok := modifierNames[p]
		if !ok {
			return nil, 0, fmt.Errorf("unsupported modifier '%s' in '%s'", p, s)
		}
		mods = append(mods, m)
	}

	key, err := parseKeyToken(keyToken)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid hotkey '%s': %w", s, err)
	}
	return mods, key, nil
}

func parseKeyToken(token string) (hotkey.Key, error) {
	if len(token) == 1 {
		ch := token[0]
		switch {
		case ch >= 'a' && ch <= 'z':
			return letterKeys[ch-'a'], nil
		case ch >= '0' && ch <= '9':
			return digitKeys[ch-'0'], nil
		}
	}

	switch token {
	case "space":
		return hotkey.KeySpace, nil
	case "enter", "return":
		return hotkey.KeyReturn, nil
	case "esc", "escape":
		return hotkey.KeyEscape, nil
	case "tab":
		return hotkey.KeyTab, nil
	case "delete":
		return hotkey.KeyDelete, nil
	case "left":
		return hotkey.KeyLeft, nil
	case "right":
		return hotkey.KeyRight, nil
	case "up":
		return hotkey.KeyUp, nil
	case "down":
		return hotkey.KeyDown, nil
	}

	if strings.HasPrefix(token, "f") {
		if n, err := strconv.Atoi(strings.TrimPrefix(token, "f")); err == nil && n >= 1 && n <= 20 {
			return fnKeys[n-1], nil
		}
	}
	return 0, fmt.Errorf("unsupported key token: %s", token)
}

var letterKeys = [26]hotkey.Key{
	hotkey.KeyA, hotkey.KeyB, hotkey.KeyC, hotkey.KeyD, hotkey.KeyE,
	hotkey.KeyF, hotkey.KeyG, hotkey.KeyH, hotkey.KeyI, hotkey.KeyJ,
	hotkey.KeyK, hotkey.KeyL, hotkey.KeyM, hotkey.KeyN, hotkey.KeyO,
	hotkey.KeyP, hotkey.KeyQ, hotkey.KeyR, hotkey.KeyS, hotkey.KeyT,
	hotkey.KeyU, hotkey.KeyV, hotkey.KeyW, hotkey.KeyX, hotkey.KeyY,
	hotkey.KeyZ,
}

var digitKeys = [10]hotkey.Key{
	hotkey.Key0, hotkey.Key1, hotkey.Key2, hotkey.Key3, hotkey.Key4,
	hotkey.Key5, hotkey.Key6, hotkey.Key7, hotkey.Key8, hotkey.Key9,
}

var fnKeys = [20]hotkey.Key{
	hotkey.KeyF1, hotkey.KeyF2, hotkey.KeyF3, hotkey.KeyF4, hotkey.KeyF5,
	hotkey.KeyF6, hotkey.KeyF7, hotkey.KeyF8, hotkey.KeyF9, hotkey.KeyF10,
	hotkey.KeyF11, hotkey.KeyF12, hotkey.KeyF13, hotkey.KeyF14, hotkey.KeyF15,
	hotkey.KeyF16, hotkey.KeyF17, hotkey.KeyF18, hotkey.KeyF19, hotkey.KeyF20,
}
