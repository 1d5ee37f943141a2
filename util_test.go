package paintvk

import "testing"

func TestSafeStringNullTerminated(t *testing.T) {
	got := safeString("main")
	if got != "main\x00" {
		t.Errorf("expected trailing null, got %q", got)
	}
	if safeString("main\x00") != "main\x00" {
		t.Error("already terminated string must pass through unchanged")
	}
	if safeString("") != "\x00" {
		t.Error("empty string must become a single null")
	}
}

func TestSliceUint32RepacksWords(t *testing.T) {
	//SPIR-V magic number, little endian on every supported platform
	words := sliceUint32([]byte{0x03, 0x02, 0x23, 0x07})
	if len(words) != 1 {
		t.Fatalf("expected 1 word, got %d", len(words))
	}
	if words[0] != 0x07230203 {
		t.Errorf("expected 0x07230203, got %#x", words[0])
	}
	if sliceUint32(nil) != nil {
		t.Error("empty bytecode must yield no words")
	}
}

func TestCheckExistingFiltersMissing(t *testing.T) {
	actual := []string{"VK_KHR_surface\x00", "VK_KHR_xcb_surface\x00"}
	wanted := []string{"VK_KHR_surface", "VK_EXT_debug_report"}

	existing, missing := checkExisting(actual, wanted)
	if missing != 1 {
		t.Errorf("expected 1 missing extension, got %d", missing)
	}
	if len(existing) != 1 || existing[0] != "VK_KHR_surface" {
		t.Errorf("unexpected existing list %v", existing)
	}
}
