package paintvk

import (
	"errors"
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func graphicsPresentFamily() []queueFamilyCaps {
	return []queueFamilyCaps{{graphics: true, present: true}}
}

func TestSelectPhysicalDevicePrefersDiscrete(t *testing.T) {
	candidates := []deviceCandidate{
		{device_type: vk.PhysicalDeviceTypeIntegratedGpu, families: graphicsPresentFamily()},
		{device_type: vk.PhysicalDeviceTypeDiscreteGpu, families: graphicsPresentFamily()},
	}

	choice, err := selectPhysicalDevice(candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if choice.index != 1 {
		t.Errorf("expected discrete device at index 1, got %d", choice.index)
	}
}

func TestSelectPhysicalDeviceEnumerationOrderTieBreak(t *testing.T) {
	candidates := []deviceCandidate{
		{device_type: vk.PhysicalDeviceTypeDiscreteGpu, families: graphicsPresentFamily()},
		{device_type: vk.PhysicalDeviceTypeDiscreteGpu, families: graphicsPresentFamily()},
	}

	choice, err := selectPhysicalDevice(candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if choice.index != 0 {
		t.Errorf("expected first discrete device, got index %d", choice.index)
	}
}

func TestSelectPhysicalDeviceIntegratedFallback(t *testing.T) {
	candidates := []deviceCandidate{
		{device_type: vk.PhysicalDeviceTypeCpu, families: graphicsPresentFamily()},
		{device_type: vk.PhysicalDeviceTypeIntegratedGpu, families: graphicsPresentFamily()},
		{device_type: vk.PhysicalDeviceTypeIntegratedGpu, families: graphicsPresentFamily()},
	}

	choice, err := selectPhysicalDevice(candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if choice.index != 1 {
		t.Errorf("expected first integrated device at index 1, got %d", choice.index)
	}
}

func TestSelectPhysicalDeviceDiscreteWithoutQueuesLoses(t *testing.T) {
	//A discrete GPU with no graphics+present family never qualifies
	candidates := []deviceCandidate{
		{device_type: vk.PhysicalDeviceTypeDiscreteGpu, families: []queueFamilyCaps{{graphics: true}}},
		{device_type: vk.PhysicalDeviceTypeIntegratedGpu, families: graphicsPresentFamily()},
	}

	choice, err := selectPhysicalDevice(candidates)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if choice.index != 1 {
		t.Errorf("expected integrated fallback, got index %d", choice.index)
	}
}

func TestSelectPhysicalDeviceOtherTypesNeverQualify(t *testing.T) {
	candidates := []deviceCandidate{
		{device_type: vk.PhysicalDeviceTypeCpu, families: graphicsPresentFamily()},
		{device_type: vk.PhysicalDeviceTypeVirtualGpu, families: graphicsPresentFamily()},
	}

	_, err := selectPhysicalDevice(candidates)
	if !errors.Is(err, ErrNoSuitableDevice) {
		t.Errorf("expected ErrNoSuitableDevice, got %v", err)
	}
}

func TestSelectPhysicalDeviceEmptyList(t *testing.T) {
	_, err := selectPhysicalDevice(nil)
	if !errors.Is(err, ErrNoSuitableDevice) {
		t.Errorf("expected ErrNoSuitableDevice, got %v", err)
	}
}

func TestQualifyingFamilyPicksLowestIndex(t *testing.T) {
	candidate := deviceCandidate{
		device_type: vk.PhysicalDeviceTypeDiscreteGpu,
		families: []queueFamilyCaps{
			{graphics: true},
			{present: true},
			{graphics: true, present: true},
			{graphics: true, present: true},
		},
	}

	family, ok := candidate.qualifyingFamily()
	if !ok {
		t.Fatal("expected a qualifying family")
	}
	if family != 2 {
		t.Errorf("expected family 2, got %d", family)
	}
}
