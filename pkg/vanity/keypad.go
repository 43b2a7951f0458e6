package vanity

// keypad maps each digit to its letters on a standard phone keypad.
// 0 and 1 carry no letters.
var keypad = [10]string{
	0: "",
	1: "",
	2: "ABC",
	3: "DEF",
	4: "GHI",
	5: "JKL",
	6: "MNO",
	7: "PQRS",
	8: "TUV",
	9: "WXYZ",
}

// Letters returns the keypad letters of digit d in keypad order,
// or "" when d is not a digit or carries no letters.
func Letters(d byte) string {
	if !isDigit(d) {
		return ""
	}
	return keypad[d-'0']
}

// Digit returns the keypad digit a letter sits on.
func Digit(letter byte) (byte, bool) {
	for d, letters := range keypad {
		for i := 0; i < len(letters); i++ {
			if letters[i] == letter {
				return byte('0' + d), true
			}
		}
	}
	return 0, false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return c >= 'A' && c <= 'Z'
}
