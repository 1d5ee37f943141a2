package paintvk

import vk "github.com/vulkan-go/vulkan"

//The per-tick protocol is expressed against a narrow backend interface so the
//ordering rules — fence wait before reuse, fence reset only before a real
//submission, advance only after a completed frame — hold by construction and
//are checkable without a GPU. CoreEngine is the only production backend.

//frameBackend is one frame slot's view of the device
type frameBackend interface {
	//waitFence blocks until slot's in-flight fence signals
	waitFence(slot int) error
	//acquireImage requests the next presentable image, signaling slot's
	//image-available semaphore. stale reports an out-of-date swapchain
	acquireImage(slot int) (image uint32, stale bool, err error)
	//resetFence re-arms slot's fence to unsignaled ahead of submission
	resetFence(slot int) error
	//submit hands the image's pre-recorded commands to the graphics queue,
	//waiting on image-available, signaling render-finished and slot's fence
	submit(slot int, image uint32) error
	//present queues the image for display, waiting on render-finished.
	//stale reports an out-of-date or suboptimal swapchain
	present(slot int, image uint32) (stale bool, err error)
	//recreate rebuilds the swapchain-dependent frame graph
	recreate() error
}

//classifyPresent maps a present result to the stale/fatal split. Out-of-date
//and suboptimal always mean rebuild; any other failure is a real error even
//while a resize is pending, only a successful present consults the flag
func classifyPresent(ret vk.Result, resize_pending bool) (stale bool, err error) {
	if ret == vk.ErrorOutOfDate || ret == vk.Suboptimal {
		return true, nil
	}
	if isError(ret) {
		return false, NewError(ret)
	}
	return resize_pending, nil
}

//renderTick drives one acquire→submit→present cycle on the given slot.
//completed reports whether work was actually submitted, callers advance the
//slot cursor only then. A stale swapchain at acquire skips the frame and
//rebuilds; the un-reset fence keeps the slot immediately reusable
func renderTick(backend frameBackend, slot int) (completed bool, err error) {
	if err = backend.waitFence(slot); err != nil {
		return false, err
	}

	image, stale, err := backend.acquireImage(slot)
	if err != nil {
		return false, err
	}
	if stale {
		return false, backend.recreate()
	}

	if err = backend.resetFence(slot); err != nil {
		return false, err
	}
	if err = backend.submit(slot, image); err != nil {
		return false, err
	}

	stale, err = backend.present(slot, image)
	if err != nil {
		return true, err
	}
	if stale {
		return true, backend.recreate()
	}
	return true, nil
}
