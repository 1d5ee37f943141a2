package paintvk

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

//safeString null-terminates a string for the vulkan C side
func safeString(s string) string {
	if len(s) == 0 {
		return "\x00"
	}
	if s[len(s)-1] != '\x00' {
		return s + "\x00"
	}
	return s
}

func safeStrings(list []string) []string {
	for i := range list {
		list[i] = safeString(list[i])
	}
	return list
}

//checkExisting filters wanted names down to those actually reported by the
//implementation, returning the count of missing entries
func checkExisting(actual, wanted []string) (existing []string, missing int) {
	for _, want := range wanted {
		found := false
		for _, have := range actual {
			if safeString(want) == safeString(have) {
				found = true
				break
			}
		}
		if found {
			existing = append(existing, want)
		} else {
			missing++
		}
	}
	return existing, missing
}

type sliceHeader struct {
	Data uintptr
	Len  int
	Cap  int
}

//sliceUint32 repacks SPIR-V bytes as the uint32 words vulkan expects
func sliceUint32(data []byte) []uint32 {
	if len(data) == 0 {
		return nil
	}
	buf := make([]uint32, len(data)/4)
	hdr := (*sliceHeader)(unsafe.Pointer(&buf))
	vk.Memcopy(unsafe.Pointer(hdr.Data), data)
	return buf
}
