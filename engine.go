package paintvk

import (
	"fmt"
	"log"
	"os"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

//CoreEngine is the single exclusive owner of every GPU handle the renderer
//creates. No sharing, no reference counting: creation pushes a destructor per
//resource group and Destroy unwinds the stack after a device idle wait, so
//teardown is always the exact reverse of creation
type CoreEngine struct {
	config CoreConfig

	info_log *log.Logger

	display        *CoreDisplay
	instance       vk.Instance
	debug_callback vk.DebugReportCallback

	device     *CoreDevice
	swapchain  *CoreSwapchain
	renderpass *CoreRenderPass
	pipeline   *CorePipeline
	pool       *CorePool
	commands   []vk.CommandBuffer
	frames     *FrameSync

	destructors    *DestructorStack
	teardown_log   []string
	recreate_count int
	resize_pending bool
}

var _ frameBackend = (*CoreEngine)(nil)

//NewCoreEngine builds the static frame graph once: instance, debug callback,
//surface, device, swapchain and its derived views/framebuffers, render pass,
//pipeline, command pool with pre-recorded buffers, frame sync slots. Any
//failure is fatal to startup, partially built state is unwound first
func NewCoreEngine(config CoreConfig, window *glfw.Window) (*CoreEngine, error) {
	core := &CoreEngine{
		config:      config,
		info_log:    log.New(os.Stderr, "INFO: ", log.Ldate|log.Ltime),
		display:     NewCoreDisplay(window),
		destructors: NewDestructorStack(),
	}

	if err := core.initVulkan(); err != nil {
		core.destructors.Unwind()
		return nil, err
	}
	return core, nil
}

func (core *CoreEngine) initVulkan() error {
	instance, err := NewInstance(core.config, core.display)
	if err != nil {
		return err
	}
	core.instance = instance
	core.destructors.Push(StepInstance, func() {
		vk.DestroyInstance(core.instance, nil)
	})

	if core.config.EnableValidation {
		callback, err := NewDebugCallback(core.instance)
		if err != nil {
			return err
		}
		core.debug_callback = callback
		core.destructors.Push(StepDebugCallback, func() {
			vk.DestroyDebugReportCallback(core.instance, core.debug_callback, nil)
		})
		core.info_log.Println("vulkan: debug report callback enabled")
	}

	if err := core.display.CreateSurface(core.instance); err != nil {
		return err
	}
	core.destructors.Push(StepSurface, func() {
		core.display.DestroySurface(core.instance)
	})

	device, err := NewCoreDevice(core.instance, core.display.Surface(), core.config.EnableValidation)
	if err != nil {
		return err
	}
	core.device = device
	core.destructors.Push(StepDevice, func() {
		core.device.Destroy()
	})
	core.info_log.Printf("vulkan: selected device %s (queue family %d)",
		core.device.Name(), core.device.QueueFamily())

	swapchain, err := NewCoreSwapchain(core.device, core.display, vk.NullSwapchain)
	if err != nil {
		return err
	}
	core.swapchain = swapchain
	core.destructors.Push(StepSwapchain, func() {
		core.swapchain.Destroy(core.device)
	})
	core.info_log.Printf("vulkan: swapchain depth %d extent %dx%d",
		core.swapchain.Depth(), core.swapchain.Extent().Width, core.swapchain.Extent().Height)

	// Destructors for the swapchain-derived graph read the engine fields at
	// unwind time, recreation swaps the fields without touching the stack and
	// a startup failure unwinds before some of them exist
	core.destructors.Push(StepImageViews, func() {
		core.swapchain.DestroyImageViews(core.device)
	})
	core.destructors.Push(StepRenderPass, func() {
		core.renderpass.Destroy(core.device)
	})
	core.destructors.Push(StepPipelineLayout, func() {
		core.pipeline.DestroyLayout(core.device)
	})
	core.destructors.Push(StepPipeline, func() {
		core.pipeline.DestroyPipeline(core.device)
	})
	core.destructors.Push(StepFramebuffers, func() {
		core.swapchain.DestroyFramebuffers(core.device)
	})

	if err := core.buildFrameGraph(); err != nil {
		return err
	}

	pool, err := NewCorePool(core.device, core.device.QueueFamily())
	if err != nil {
		return err
	}
	core.pool = pool
	// The pool implicitly frees its command buffers
	core.destructors.Push(StepCommandPool, func() {
		core.pool.Destroy(core.device)
	})

	if err := core.buildCommands(); err != nil {
		return err
	}

	frames, err := NewFrameSync(core.device)
	if err != nil {
		return err
	}
	core.frames = frames
	core.destructors.Push(StepFrameSync, func() {
		core.frames.Destroy(core.device)
	})

	return nil
}

//buildFrameGraph derives everything downstream of the swapchain images:
//views, render pass, pipeline state and framebuffers, in dependency order
func (core *CoreEngine) buildFrameGraph() error {
	if err := core.swapchain.CreateImageViews(core.device); err != nil {
		return err
	}

	renderpass, err := NewCoreRenderPass(core.device, core.swapchain.Format())
	if err != nil {
		return err
	}
	core.renderpass = renderpass

	program, err := NewShaderProgram(core.device, core.config.VertexSPIRV, core.config.FragmentSPIRV)
	if err != nil {
		return err
	}
	pipeline, err := NewPipelineBuilder(program).BuildPipeline(core.device, program, core.renderpass.Handle())
	if err != nil {
		return err
	}
	core.pipeline = pipeline

	return core.swapchain.CreateFramebuffers(core.device, core.renderpass.Handle())
}

//buildCommands allocates and statically records one buffer per framebuffer
func (core *CoreEngine) buildCommands() error {
	commands, err := AllocateCommandBuffers(core.device, core.pool, core.swapchain.Depth())
	if err != nil {
		return err
	}
	if err := RecordDrawCommands(commands, core.swapchain,
		core.renderpass.Handle(), core.pipeline.Handle()); err != nil {
		return err
	}
	core.commands = commands
	return nil
}

//RenderFrame drives one tick of the render loop on the current sync slot,
//advancing the slot cursor only when a frame was actually submitted
func (core *CoreEngine) RenderFrame() error {
	completed, err := renderTick(core, core.frames.Current())
	if err != nil {
		return err
	}
	if completed {
		core.frames.Advance()
	}
	return nil
}

//NotifyResize flags the next present to rebuild the swapchain, called from
//the window system's framebuffer size callback
func (core *CoreEngine) NotifyResize() {
	core.resize_pending = true
}

//RecreateCount reports how many times the swapchain has been rebuilt
func (core *CoreEngine) RecreateCount() int {
	return core.recreate_count
}

//TeardownLog is the order Destroy released resource groups in, empty before
//shutdown
func (core *CoreEngine) TeardownLog() []string {
	return core.teardown_log
}

//Destroy waits for the device to go idle, then unwinds every destructor in
//reverse creation order. Safe to call once after the loop exits
func (core *CoreEngine) Destroy() {
	if core.device != nil {
		core.device.WaitIdle()
	}
	core.teardown_log = core.destructors.Unwind()
	for _, step := range core.teardown_log {
		core.info_log.Printf("vulkan: destroyed %s", step)
	}
}

// frameBackend implementation

func (core *CoreEngine) waitFence(slot int) error {
	fences := []vk.Fence{core.frames.Slot(slot).in_flight}
	ret := vk.WaitForFences(core.device.Handle(), 1, fences, vk.True, vk.MaxUint64)
	if isError(ret) {
		return fmt.Errorf("failed waiting on frame fence %d: %w", slot, NewError(ret))
	}
	return nil
}

func (core *CoreEngine) acquireImage(slot int) (uint32, bool, error) {
	var image uint32
	ret := vk.AcquireNextImage(core.device.Handle(), core.swapchain.Handle(), vk.MaxUint64,
		core.frames.Slot(slot).image_available, vk.NullFence, &image)
	switch {
	case ret == vk.ErrorOutOfDate:
		return 0, true, nil
	case ret == vk.Success || ret == vk.Suboptimal:
		// Suboptimal still acquired the image and will signal the semaphore,
		// present handles the rebuild
		return image, false, nil
	default:
		return 0, false, fmt.Errorf("could not acquire swapchain image: %w", NewError(ret))
	}
}

func (core *CoreEngine) resetFence(slot int) error {
	fences := []vk.Fence{core.frames.Slot(slot).in_flight}
	ret := vk.ResetFences(core.device.Handle(), 1, fences)
	if isError(ret) {
		return fmt.Errorf("failed to reset frame fence %d: %w", slot, NewError(ret))
	}
	return nil
}

func (core *CoreEngine) submit(slot int, image uint32) error {
	sync := core.frames.Slot(slot)

	wait_stages := []vk.PipelineStageFlags{
		vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
	}
	submit_info := vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   1,
		PWaitSemaphores:      []vk.Semaphore{sync.image_available},
		PWaitDstStageMask:    wait_stages,
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{core.commands[image]},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{sync.render_finished},
	}

	ret := vk.QueueSubmit(core.device.GraphicsQueue(), 1, []vk.SubmitInfo{submit_info}, sync.in_flight)
	if isError(ret) {
		return fmt.Errorf("error submitting draw commands: %w", NewError(ret))
	}
	return nil
}

func (core *CoreEngine) present(slot int, image uint32) (bool, error) {
	sync := core.frames.Slot(slot)

	ret := vk.QueuePresent(core.device.PresentQueue(), &vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{sync.render_finished},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{core.swapchain.Handle()},
		PImageIndices:      []uint32{image},
	})
	stale, err := classifyPresent(ret, core.resize_pending)
	if err != nil {
		return false, fmt.Errorf("error presenting swapchain image: %w", err)
	}
	return stale, nil
}

//recreate rebuilds the swapchain-dependent frame graph after a stale acquire
//or present. Teardown follows dependency order, the retired swapchain hands
//off to the new one before being destroyed
func (core *CoreEngine) recreate() error {
	core.recreate_count++
	core.resize_pending = false

	core.display.WaitForValidSize()
	core.device.WaitIdle()

	FreeCommandBuffers(core.device, core.pool, core.commands)
	core.commands = nil
	core.swapchain.DestroyFramebuffers(core.device)
	core.pipeline.DestroyPipeline(core.device)
	core.pipeline.DestroyLayout(core.device)
	core.renderpass.Destroy(core.device)
	core.swapchain.DestroyImageViews(core.device)

	retired := core.swapchain
	swapchain, err := NewCoreSwapchain(core.device, core.display, retired.Handle())
	if err != nil {
		return err
	}
	retired.Destroy(core.device)
	core.swapchain = swapchain

	if err := core.buildFrameGraph(); err != nil {
		return err
	}
	if err := core.buildCommands(); err != nil {
		return err
	}

	core.info_log.Printf("vulkan: swapchain recreated (%d) extent %dx%d",
		core.recreate_count, core.swapchain.Extent().Width, core.swapchain.Extent().Height)
	return nil
}
