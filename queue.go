package paintvk

import (
	vk "github.com/vulkan-go/vulkan"
)

//queueFamilyCaps describes what one queue family of a physical device can do
//against the target surface
type queueFamilyCaps struct {
	graphics bool
	present  bool
}

func (q queueFamilyCaps) qualifies() bool {
	return q.graphics && q.present
}

//queueFamilySupport probes every queue family of a physical device for
//graphics commands and presentation to the given surface
func queueFamilySupport(gpu vk.PhysicalDevice, surface vk.Surface) []queueFamilyCaps {
	var count uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, nil)
	properties := make([]vk.QueueFamilyProperties, count)
	vk.GetPhysicalDeviceQueueFamilyProperties(gpu, &count, properties)

	caps := make([]queueFamilyCaps, count)
	for index := range properties {
		properties[index].Deref()
		graphics := properties[index].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0

		var supportsPresent vk.Bool32
		vk.GetPhysicalDeviceSurfaceSupport(gpu, uint32(index), surface, &supportsPresent)

		caps[index] = queueFamilyCaps{
			graphics: graphics,
			present:  supportsPresent.B(),
		}
	}
	return caps
}
