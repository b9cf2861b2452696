package st7701s

import "testing"

func TestEncode(t *testing.T) {
	for _, k := range []Kind{Command, Data} {
		for i := 0; i < 256; i++ {
			b := byte(i)
			w := Encode(k, b)
			if w > 0x1FF {
				t.Fatalf("Encode(%s, 0x%02X) = 0x%03X, wider than 9 bits", k, b, uint16(w))
			}
			if got, want := w&0x100 != 0, k == Data; got != want {
				t.Errorf("Encode(%s, 0x%02X) bit 8 = %t, want %t", k, b, got, want)
			}
			if got := byte(w & 0xFF); got != b {
				t.Errorf("Encode(%s, 0x%02X) payload = 0x%02X", k, b, got)
			}
			if w.Kind() != k || w.Byte() != b {
				t.Errorf("Encode(%s, 0x%02X) decodes as %s", k, b, w)
			}
		}
	}
}

func TestWordString(t *testing.T) {
	tests := []struct {
		w    Word
		want string
	}{
		{Encode(Command, SLPOUT), "cmd(0x11)"},
		{Encode(Data, 0xA0), "data(0xA0)"},
		{Encode(Data, 0x00), "data(0x00)"},
	}
	for _, tt := range tests {
		if got := tt.w.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
