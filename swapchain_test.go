package paintvk

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestChooseSurfaceFormatPrefersSrgb(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	chosen := chooseSurfaceFormat(formats)
	if chosen.Format != vk.FormatB8g8r8a8Srgb {
		t.Errorf("expected B8G8R8A8 sRGB, got format %d", chosen.Format)
	}
	if chosen.ColorSpace != vk.ColorSpaceSrgbNonlinear {
		t.Errorf("expected sRGB non-linear color space, got %d", chosen.ColorSpace)
	}
}

func TestChooseSurfaceFormatFallsBackToFirst(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	chosen := chooseSurfaceFormat(formats)
	if chosen.Format != vk.FormatR8g8b8a8Unorm {
		t.Errorf("expected first reported format, got %d", chosen.Format)
	}
}

func TestChoosePresentMode(t *testing.T) {
	cases := []struct {
		name  string
		modes []vk.PresentMode
		want  vk.PresentMode
	}{
		{
			name:  "mailbox available",
			modes: []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeMailbox, vk.PresentModeImmediate},
			want:  vk.PresentModeMailbox,
		},
		{
			name:  "fifo fallback",
			modes: []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeImmediate},
			want:  vk.PresentModeFifo,
		},
		{
			name:  "empty list still yields fifo",
			modes: nil,
			want:  vk.PresentModeFifo,
		},
	}

	for _, tc := range cases {
		if got := choosePresentMode(tc.modes); got != tc.want {
			t.Errorf("%s: got mode %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestChooseImageCount(t *testing.T) {
	cases := []struct {
		name      string
		min_count uint32
		max_count uint32
		want      uint32
	}{
		{name: "one above minimum", min_count: 2, max_count: 8, want: 3},
		{name: "clamped to maximum", min_count: 3, max_count: 3, want: 3},
		{name: "zero maximum means unbounded", min_count: 2, max_count: 0, want: 3},
	}

	for _, tc := range cases {
		if got := chooseImageCount(tc.min_count, tc.max_count); got != tc.want {
			t.Errorf("%s: got %d images, want %d", tc.name, got, tc.want)
		}
	}
}

func TestChooseExtentTakesCurrentVerbatim(t *testing.T) {
	current := vk.Extent2D{Width: 1024, Height: 768}
	got := chooseExtent(current, 800, 600)
	if got.Width != 1024 || got.Height != 768 {
		t.Errorf("expected surface extent 1024x768, got %dx%d", got.Width, got.Height)
	}
}

func TestChooseExtentUndefinedSentinel(t *testing.T) {
	current := vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32}
	got := chooseExtent(current, 800, 600)
	if got.Width != 800 || got.Height != 600 {
		t.Errorf("expected window size 800x600, got %dx%d", got.Width, got.Height)
	}
}
