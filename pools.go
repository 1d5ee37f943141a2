package paintvk

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

//CorePool is the single command pool all draw command buffers come from.
//Buffers are long lived and pre-recorded, so the pool carries no per-frame
//reset flags; destroying it implicitly frees its buffers
type CorePool struct {
	pool vk.CommandPool
}

func NewCorePool(device *CoreDevice, family_index uint32) (*CorePool, error) {
	var core CorePool

	ret := vk.CreateCommandPool(device.Handle(), &vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: family_index,
	}, nil, &core.pool)
	if isError(ret) {
		return nil, fmt.Errorf("error creating command pool: %w", NewError(ret))
	}

	return &core, nil
}

func (core *CorePool) Handle() vk.CommandPool {
	return core.pool
}

func (core *CorePool) Destroy(device *CoreDevice) {
	if core.pool != vk.NullCommandPool {
		vk.DestroyCommandPool(device.Handle(), core.pool, nil)
		core.pool = vk.NullCommandPool
	}
}
