package paintvk

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

//CoreSwapchain owns the presentable image chain and the per-image derived
//state. Image views are created after the swapchain and destroyed before it,
//framebuffers bind the views to a render pass
type CoreSwapchain struct {
	swapchain    vk.Swapchain
	format       vk.SurfaceFormat
	present_mode vk.PresentMode
	extent       vk.Extent2D
	rect         vk.Rect2D
	viewport     vk.Viewport
	images       []vk.Image
	image_views  []vk.ImageView
	framebuffers []vk.Framebuffer
}

//chooseSurfaceFormat prefers 8-bit BGRA with the non-linear sRGB color space,
//otherwise the first format the surface reports. Formats must be dereferenced
//by the caller
func chooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	chosen := formats[0]
	for _, sf := range formats {
		if sf.Format == vk.FormatB8g8r8a8Srgb && sf.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			chosen = sf
		}
	}
	return chosen
}

//choosePresentMode prefers mailbox for low-latency triple buffering and falls
//back to FIFO, the only mode vulkan guarantees everywhere
func choosePresentMode(modes []vk.PresentMode) vk.PresentMode {
	for _, mode := range modes {
		if mode == vk.PresentModeMailbox {
			return mode
		}
	}
	return vk.PresentModeFifo
}

//chooseImageCount asks for one image more than the minimum, clamped to the
//maximum when the platform bounds it. A maximum of zero means unbounded
func chooseImageCount(min_count, max_count uint32) uint32 {
	desired := min_count + 1
	if max_count > 0 && desired > max_count {
		desired = max_count
	}
	return desired
}

//chooseExtent takes the surface's current extent verbatim unless it reports
//the undefined sentinel, in which case the window's logical size substitutes
func chooseExtent(current vk.Extent2D, width, height int) vk.Extent2D {
	if current.Width == vk.MaxUint32 {
		return vk.Extent2D{Width: uint32(width), Height: uint32(height)}
	}
	return current
}

//NewCoreSwapchain builds the image chain sized and formatted for the surface.
//old may carry the retired swapchain handle during recreation
func NewCoreSwapchain(device *CoreDevice, display *CoreDisplay, old vk.Swapchain) (*CoreSwapchain, error) {
	var core CoreSwapchain

	gpu := device.Physical()
	surface := display.Surface()

	var capabilities vk.SurfaceCapabilities
	ret := vk.GetPhysicalDeviceSurfaceCapabilities(gpu, surface, &capabilities)
	if isError(ret) {
		return nil, fmt.Errorf("failed to query surface capabilities: %w", NewError(ret))
	}
	capabilities.Deref()
	capabilities.CurrentExtent.Deref()

	var format_count uint32
	vk.GetPhysicalDeviceSurfaceFormats(gpu, surface, &format_count, nil)
	if format_count == 0 {
		return nil, fmt.Errorf("no surface color format reported for display")
	}
	formats := make([]vk.SurfaceFormat, format_count)
	vk.GetPhysicalDeviceSurfaceFormats(gpu, surface, &format_count, formats)
	for index := range formats {
		formats[index].Deref()
	}

	var mode_count uint32
	vk.GetPhysicalDeviceSurfacePresentModes(gpu, surface, &mode_count, nil)
	modes := make([]vk.PresentMode, mode_count)
	vk.GetPhysicalDeviceSurfacePresentModes(gpu, surface, &mode_count, modes)

	core.format = chooseSurfaceFormat(formats)
	core.present_mode = choosePresentMode(modes)

	width, height := display.LogicalSize()
	core.extent = chooseExtent(capabilities.CurrentExtent, width, height)
	core.rect = vk.Rect2D{Offset: vk.Offset2D{}, Extent: core.extent}
	core.viewport = vk.Viewport{
		X:        0.0,
		Y:        0.0,
		Width:    float32(core.extent.Width),
		Height:   float32(core.extent.Height),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}

	image_count := chooseImageCount(capabilities.MinImageCount, capabilities.MaxImageCount)

	// Prefer the identity transform when the surface supports it
	pre_transform := capabilities.CurrentTransform
	if vk.SurfaceTransformFlagBits(capabilities.SupportedTransforms)&vk.SurfaceTransformIdentityBit != 0 {
		pre_transform = vk.SurfaceTransformIdentityBit
	}

	var swapchain vk.Swapchain
	ret = vk.CreateSwapchain(device.Handle(), &vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    image_count,
		ImageFormat:      core.format.Format,
		ImageColorSpace:  core.format.ColorSpace,
		ImageExtent:      core.extent,
		ImageArrayLayers: 1,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     pre_transform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      core.present_mode,
		Clipped:          vk.True,
		OldSwapchain:     old,
	}, nil, &swapchain)
	if isError(ret) {
		return nil, fmt.Errorf("failed to create swapchain: %w", NewError(ret))
	}
	core.swapchain = swapchain

	var actual_count uint32
	ret = vk.GetSwapchainImages(device.Handle(), core.swapchain, &actual_count, nil)
	if isError(ret) {
		return nil, fmt.Errorf("failed to fetch swapchain images: %w", NewError(ret))
	}
	core.images = make([]vk.Image, actual_count)
	vk.GetSwapchainImages(device.Handle(), core.swapchain, &actual_count, core.images)

	return &core, nil
}

//CreateImageViews derives one 2D color view per swapchain image with identity
//channel mapping and a single mip/array layer
func (core *CoreSwapchain) CreateImageViews(device *CoreDevice) error {
	core.image_views = make([]vk.ImageView, len(core.images))
	for index, image := range core.images {
		var view vk.ImageView
		ret := vk.CreateImageView(device.Handle(), &vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    image,
			ViewType: vk.ImageViewType2d,
			Format:   core.format.Format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}, nil, &view)
		if isError(ret) {
			return fmt.Errorf("failed to create image view %d: %w", index, NewError(ret))
		}
		core.image_views[index] = view
	}
	return nil
}

//CreateFramebuffers binds one framebuffer per image view to the render pass
func (core *CoreSwapchain) CreateFramebuffers(device *CoreDevice, render_pass vk.RenderPass) error {
	core.framebuffers = make([]vk.Framebuffer, len(core.image_views))
	for index, view := range core.image_views {
		attachments := []vk.ImageView{view}
		var framebuffer vk.Framebuffer
		ret := vk.CreateFramebuffer(device.Handle(), &vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      render_pass,
			AttachmentCount: uint32(len(attachments)),
			PAttachments:    attachments,
			Width:           core.extent.Width,
			Height:          core.extent.Height,
			Layers:          1,
		}, nil, &framebuffer)
		if isError(ret) {
			return fmt.Errorf("failed to create framebuffer %d: %w", index, NewError(ret))
		}
		core.framebuffers[index] = framebuffer
	}
	return nil
}

func (core *CoreSwapchain) Depth() int {
	return len(core.images)
}

func (core *CoreSwapchain) Extent() vk.Extent2D {
	return core.extent
}

func (core *CoreSwapchain) Format() vk.Format {
	return core.format.Format
}

func (core *CoreSwapchain) Handle() vk.Swapchain {
	return core.swapchain
}

func (core *CoreSwapchain) DestroyFramebuffers(device *CoreDevice) {
	for _, framebuffer := range core.framebuffers {
		vk.DestroyFramebuffer(device.Handle(), framebuffer, nil)
	}
	core.framebuffers = nil
}

func (core *CoreSwapchain) DestroyImageViews(device *CoreDevice) {
	for _, view := range core.image_views {
		vk.DestroyImageView(device.Handle(), view, nil)
	}
	core.image_views = nil
}

func (core *CoreSwapchain) Destroy(device *CoreDevice) {
	if core.swapchain != vk.NullSwapchain {
		vk.DestroySwapchain(device.Handle(), core.swapchain, nil)
		core.swapchain = vk.NullSwapchain
	}
}
