package paintvk

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

//MaxFramesInFlight bounds how many frames the CPU may race ahead of the GPU.
//The slots cycle independently of the swapchain's image count
const MaxFramesInFlight = 2

//FrameSyncSlot is the per-in-flight-frame synchronization state. The fence is
//created signaled so the very first wait on a slot never deadlocks, then
//re-armed by every submission targeting the slot
type FrameSyncSlot struct {
	image_available vk.Semaphore
	render_finished vk.Semaphore
	in_flight       vk.Fence
}

//FrameSync owns the fixed ring of sync slots and the cursor into it
type FrameSync struct {
	slots   [MaxFramesInFlight]FrameSyncSlot
	current int
}

func NewFrameSync(device *CoreDevice) (*FrameSync, error) {
	var core FrameSync

	for index := 0; index < MaxFramesInFlight; index++ {
		slot := &core.slots[index]

		ret := vk.CreateSemaphore(device.Handle(), &vk.SemaphoreCreateInfo{
			SType: vk.StructureTypeSemaphoreCreateInfo,
		}, nil, &slot.image_available)
		if isError(ret) {
			return nil, fmt.Errorf("failed to create image-available semaphore %d: %w", index, NewError(ret))
		}

		ret = vk.CreateSemaphore(device.Handle(), &vk.SemaphoreCreateInfo{
			SType: vk.StructureTypeSemaphoreCreateInfo,
		}, nil, &slot.render_finished)
		if isError(ret) {
			return nil, fmt.Errorf("failed to create render-finished semaphore %d: %w", index, NewError(ret))
		}

		ret = vk.CreateFence(device.Handle(), &vk.FenceCreateInfo{
			SType: vk.StructureTypeFenceCreateInfo,
			Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
		}, nil, &slot.in_flight)
		if isError(ret) {
			return nil, fmt.Errorf("failed to create in-flight fence %d: %w", index, NewError(ret))
		}
	}

	return &core, nil
}

//Current is the slot index the next tick operates on
func (core *FrameSync) Current() int {
	return core.current
}

func (core *FrameSync) Slot(index int) *FrameSyncSlot {
	return &core.slots[index]
}

//Advance moves the cursor, called only after a fully submitted frame
func (core *FrameSync) Advance() {
	core.current = (core.current + 1) % MaxFramesInFlight
}

func (core *FrameSync) Destroy(device *CoreDevice) {
	for index := range core.slots {
		slot := &core.slots[index]
		vk.DestroySemaphore(device.Handle(), slot.render_finished, nil)
		vk.DestroySemaphore(device.Handle(), slot.image_available, nil)
		vk.DestroyFence(device.Handle(), slot.in_flight, nil)
	}
}
