package paintvk

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

//CoreRenderPass declares the attachment contract for the draw pipeline: a
//single color attachment cleared on load, kept on store, transitioning from
//undefined straight to present-ready, with one graphics subpass bound to it
type CoreRenderPass struct {
	render_pass vk.RenderPass
}

func NewCoreRenderPass(device *CoreDevice, surface_format vk.Format) (*CoreRenderPass, error) {
	var core CoreRenderPass

	attachments := []vk.AttachmentDescription{{
		Format:         surface_format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}}

	color_references := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpasses := []vk.SubpassDescription{{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: 1,
		PColorAttachments:    color_references,
	}}

	ret := vk.CreateRenderPass(device.Handle(), &vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    uint32(len(subpasses)),
		PSubpasses:      subpasses,
	}, nil, &core.render_pass)
	if isError(ret) {
		return nil, fmt.Errorf("failed to create render pass: %w", NewError(ret))
	}

	return &core, nil
}

func (core *CoreRenderPass) Handle() vk.RenderPass {
	return core.render_pass
}

func (core *CoreRenderPass) Destroy(device *CoreDevice) {
	if core == nil {
		return
	}
	if core.render_pass != vk.NullRenderPass {
		vk.DestroyRenderPass(device.Handle(), core.render_pass, nil)
		core.render_pass = vk.NullRenderPass
	}
}
