package paintvk

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

//Recording is static: one pre-recorded primary buffer per framebuffer, so the
//drawn content cannot vary without re-recording every buffer. Re-recording
//only happens as part of swapchain recreation.

const (
	drawVertexCount   = 4
	drawInstanceCount = 1
)

//AllocateCommandBuffers allocates one primary command buffer per framebuffer
//from the shared pool
func AllocateCommandBuffers(device *CoreDevice, pool *CorePool, count int) ([]vk.CommandBuffer, error) {
	commands := make([]vk.CommandBuffer, count)
	ret := vk.AllocateCommandBuffers(device.Handle(), &vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        pool.Handle(),
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(count),
	}, commands)
	if isError(ret) {
		return nil, fmt.Errorf("failed to allocate command buffers: %w", NewError(ret))
	}
	return commands, nil
}

//RecordDrawCommands records every buffer once: clear to opaque black, set the
//dynamic viewport and scissor, bind the pipeline and draw the fixed
//shader-generated quad
func RecordDrawCommands(commands []vk.CommandBuffer, swapchain *CoreSwapchain,
	render_pass vk.RenderPass, pipeline vk.Pipeline) error {

	clear_values := []vk.ClearValue{
		vk.NewClearValue([]float32{0.0, 0.0, 0.0, 1.0}),
	}

	for index, cmd := range commands {
		ret := vk.BeginCommandBuffer(cmd, &vk.CommandBufferBeginInfo{
			SType: vk.StructureTypeCommandBufferBeginInfo,
		})
		if isError(ret) {
			return fmt.Errorf("failed to start command buffer %d: %w", index, NewError(ret))
		}

		vk.CmdBeginRenderPass(cmd, &vk.RenderPassBeginInfo{
			SType:           vk.StructureTypeRenderPassBeginInfo,
			RenderPass:      render_pass,
			Framebuffer:     swapchain.framebuffers[index],
			RenderArea:      swapchain.rect,
			ClearValueCount: uint32(len(clear_values)),
			PClearValues:    clear_values,
		}, vk.SubpassContentsInline)

		vk.CmdSetViewport(cmd, 0, 1, []vk.Viewport{swapchain.viewport})
		vk.CmdSetScissor(cmd, 0, 1, []vk.Rect2D{swapchain.rect})

		vk.CmdBindPipeline(cmd, vk.PipelineBindPointGraphics, pipeline)
		vk.CmdDraw(cmd, drawVertexCount, drawInstanceCount, 0, 0)

		vk.CmdEndRenderPass(cmd)
		ret = vk.EndCommandBuffer(cmd)
		if isError(ret) {
			return fmt.Errorf("failed to end command buffer %d: %w", index, NewError(ret))
		}
	}
	return nil
}

//FreeCommandBuffers returns the buffers to the pool during recreation
func FreeCommandBuffers(device *CoreDevice, pool *CorePool, commands []vk.CommandBuffer) {
	if len(commands) > 0 {
		vk.FreeCommandBuffers(device.Handle(), pool.Handle(), uint32(len(commands)), commands)
	}
}
