package paintvk

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

//CorePipeline is the compiled fixed-function draw state plus its empty
//layout. Built once from the swapchain's format, rebuilt whenever the
//swapchain is recreated
type CorePipeline struct {
	layout   vk.PipelineLayout
	pipeline vk.Pipeline
}

//PipelineBuilder declares the fixed-function state for the single draw
//pipeline: two shader stages, no vertex input, triangle-list topology,
//back-face culling with clockwise front face, fill rasterization, no blending
type PipelineBuilder struct {
	shader_stages  []vk.PipelineShaderStageCreateInfo
	vertex_input   vk.PipelineVertexInputStateCreateInfo
	input_assembly vk.PipelineInputAssemblyStateCreateInfo
	rasterizer     vk.PipelineRasterizationStateCreateInfo
	multisampling  vk.PipelineMultisampleStateCreateInfo
	color_blend    vk.PipelineColorBlendAttachmentState
	dynamic_states []vk.DynamicState
}

func NewPipelineBuilder(program *ShaderProgram) *PipelineBuilder {
	pb := PipelineBuilder{}

	pb.shader_stages = []vk.PipelineShaderStageCreateInfo{
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageVertexBit,
			Module: program.vertex_module,
			PName:  safeString("main"),
		},
		{
			SType:  vk.StructureTypePipelineShaderStageCreateInfo,
			Stage:  vk.ShaderStageFragmentBit,
			Module: program.fragment_module,
			PName:  safeString("main"),
		},
	}

	// Geometry is fully shader generated, no vertex bindings
	pb.vertex_input = vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   0,
		VertexAttributeDescriptionCount: 0,
	}

	pb.input_assembly = vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
	}

	pb.rasterizer = vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             vk.PolygonModeFill,
		CullMode:                vk.CullModeFlags(vk.CullModeBackBit),
		FrontFace:               vk.FrontFaceClockwise,
		DepthBiasEnable:         vk.False,
		LineWidth:               1.0,
	}

	pb.multisampling = vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		RasterizationSamples: vk.SampleCount1Bit,
		SampleShadingEnable:  vk.False,
		MinSampleShading:     1.0,
	}

	pb.color_blend = vk.PipelineColorBlendAttachmentState{
		BlendEnable: vk.False,
		ColorWriteMask: vk.ColorComponentFlags(
			vk.ColorComponentRBit | vk.ColorComponentGBit |
				vk.ColorComponentBBit | vk.ColorComponentABit),
	}

	// Viewport and scissor are set per command buffer, not baked in
	pb.dynamic_states = []vk.DynamicState{
		vk.DynamicStateViewport,
		vk.DynamicStateScissor,
	}

	return &pb
}

//BuildPipeline creates the empty pipeline layout and the graphics pipeline
//against the render pass, then destroys the shader modules: they are not
//runtime state
func (pb *PipelineBuilder) BuildPipeline(device *CoreDevice, program *ShaderProgram, render_pass vk.RenderPass) (*CorePipeline, error) {
	var core CorePipeline

	var layout vk.PipelineLayout
	ret := vk.CreatePipelineLayout(device.Handle(), &vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	}, nil, &layout)
	if isError(ret) {
		return nil, fmt.Errorf("failed to create pipeline layout: %w", NewError(ret))
	}
	core.layout = layout

	viewport_state := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	attachments := []vk.PipelineColorBlendAttachmentState{pb.color_blend}
	blend_state := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		LogicOpEnable:   vk.False,
		LogicOp:         vk.LogicOpCopy,
		AttachmentCount: 1,
		PAttachments:    attachments,
	}

	dynamic_state := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(pb.dynamic_states)),
		PDynamicStates:    pb.dynamic_states,
	}

	pipeline_info := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(pb.shader_stages)),
		PStages:             pb.shader_stages,
		PVertexInputState:   &pb.vertex_input,
		PInputAssemblyState: &pb.input_assembly,
		PViewportState:      &viewport_state,
		PRasterizationState: &pb.rasterizer,
		PMultisampleState:   &pb.multisampling,
		PColorBlendState:    &blend_state,
		PDynamicState:       &dynamic_state,
		Layout:              core.layout,
		RenderPass:          render_pass,
		Subpass:             0,
	}

	pipelines := make([]vk.Pipeline, 1)
	ret = vk.CreateGraphicsPipelines(device.Handle(), vk.NullPipelineCache, 1,
		[]vk.GraphicsPipelineCreateInfo{pipeline_info}, nil, pipelines)

	// Build-time inputs only, release regardless of the outcome
	program.Destroy(device)

	if isError(ret) {
		vk.DestroyPipelineLayout(device.Handle(), core.layout, nil)
		return nil, fmt.Errorf("failed to create graphics pipeline: %w", NewError(ret))
	}
	core.pipeline = pipelines[0]

	return &core, nil
}

func (core *CorePipeline) Handle() vk.Pipeline {
	return core.pipeline
}

func (core *CorePipeline) Layout() vk.PipelineLayout {
	return core.layout
}

func (core *CorePipeline) DestroyPipeline(device *CoreDevice) {
	if core == nil {
		return
	}
	if core.pipeline != vk.NullPipeline {
		vk.DestroyPipeline(device.Handle(), core.pipeline, nil)
		core.pipeline = vk.NullPipeline
	}
}

func (core *CorePipeline) DestroyLayout(device *CoreDevice) {
	if core == nil {
		return
	}
	if core.layout != vk.NullPipelineLayout {
		vk.DestroyPipelineLayout(device.Handle(), core.layout, nil)
		core.layout = vk.NullPipelineLayout
	}
}
