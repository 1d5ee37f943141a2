package paintvk

import (
	"errors"
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

//ErrNoSuitableDevice is the capability error for an empty or non-qualifying
//physical device list
var ErrNoSuitableDevice = errors.New("no suitable device found")

//CoreDevice owns the physical/logical device pair and the single queue family
//serving both graphics and presentation. Created once at startup, immutable
//afterwards
type CoreDevice struct {
	physical_devices                  []vk.PhysicalDevice
	selected_device                   vk.PhysicalDevice
	selected_device_properties        vk.PhysicalDeviceProperties
	selected_device_memory_properties vk.PhysicalDeviceMemoryProperties
	handle                            vk.Device
	queue_family                      uint32
	graphics_queue                    vk.Queue
	present_queue                     vk.Queue
}

//deviceCandidate is the policy view of one enumerated physical device
type deviceCandidate struct {
	device_type vk.PhysicalDeviceType
	families    []queueFamilyCaps
}

//deviceChoice names the winning candidate and its queue family
type deviceChoice struct {
	index        int
	queue_family uint32
}

//qualifyingFamily returns the first queue family supporting both graphics and
//presentation, tie-break is the lowest family index
func (c deviceCandidate) qualifyingFamily() (uint32, bool) {
	for index, caps := range c.families {
		if caps.qualifies() {
			return uint32(index), true
		}
	}
	return 0, false
}

//selectPhysicalDevice applies the selection policy: among qualifying devices
//prefer the first discrete GPU in enumeration order, fall back to the first
//qualifying integrated GPU, otherwise fail. Other device types never qualify
func selectPhysicalDevice(candidates []deviceCandidate) (deviceChoice, error) {
	integrated := -1
	integrated_family := uint32(0)

	for index, candidate := range candidates {
		family, ok := candidate.qualifyingFamily()
		if !ok {
			continue
		}
		switch candidate.device_type {
		case vk.PhysicalDeviceTypeDiscreteGpu:
			return deviceChoice{index: index, queue_family: family}, nil
		case vk.PhysicalDeviceTypeIntegratedGpu:
			if integrated < 0 {
				integrated = index
				integrated_family = family
			}
		}
	}

	if integrated >= 0 {
		return deviceChoice{index: integrated, queue_family: integrated_family}, nil
	}
	return deviceChoice{}, ErrNoSuitableDevice
}

//NewCoreDevice enumerates the physical devices, applies the selection policy
//against the target surface and creates the logical device with a single
//graphics+present queue
func NewCoreDevice(instance vk.Instance, surface vk.Surface, enable_validation bool) (*CoreDevice, error) {
	var core CoreDevice

	var gpu_count uint32
	ret := vk.EnumeratePhysicalDevices(instance, &gpu_count, nil)
	if isError(ret) {
		return nil, fmt.Errorf("error while enumerating physical devices: %w", NewError(ret))
	}
	if gpu_count == 0 {
		return nil, ErrNoSuitableDevice
	}

	gpus := make([]vk.PhysicalDevice, gpu_count)
	ret = vk.EnumeratePhysicalDevices(instance, &gpu_count, gpus)
	if isError(ret) {
		return nil, fmt.Errorf("error while enumerating physical devices: %w", NewError(ret))
	}
	core.physical_devices = gpus

	candidates := make([]deviceCandidate, len(gpus))
	for index, gpu := range gpus {
		var properties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(gpu, &properties)
		properties.Deref()
		candidates[index] = deviceCandidate{
			device_type: properties.DeviceType,
			families:    queueFamilySupport(gpu, surface),
		}
	}

	choice, err := selectPhysicalDevice(candidates)
	if err != nil {
		return nil, err
	}

	core.selected_device = gpus[choice.index]
	core.queue_family = choice.queue_family

	vk.GetPhysicalDeviceProperties(core.selected_device, &core.selected_device_properties)
	core.selected_device_properties.Deref()
	vk.GetPhysicalDeviceMemoryProperties(core.selected_device, &core.selected_device_memory_properties)
	core.selected_device_memory_properties.Deref()

	queue_infos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: core.queue_family,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}}

	actual, err := DeviceExtensions(core.selected_device)
	if err != nil {
		return nil, err
	}
	device_extensions, missing := checkExisting(actual, []string{vk.KhrSwapchainExtensionName})
	if missing > 0 {
		return nil, fmt.Errorf("device %s does not support presentation: %w",
			core.Name(), ErrNoSuitableDevice)
	}
	var layers []string
	if enable_validation {
		layers = []string{ValidationLayerName}
	}

	var device vk.Device
	ret = vk.CreateDevice(core.selected_device, &vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queue_infos)),
		PQueueCreateInfos:       queue_infos,
		EnabledExtensionCount:   uint32(len(device_extensions)),
		PpEnabledExtensionNames: safeStrings(device_extensions),
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     safeStrings(layers),
	}, nil, &device)
	if isError(ret) {
		return nil, fmt.Errorf("failed to create logical device: %w", NewError(ret))
	}
	core.handle = device

	// One family serves both roles, the two handles alias the same queue
	var queue vk.Queue
	vk.GetDeviceQueue(device, core.queue_family, 0, &queue)
	core.graphics_queue = queue
	core.present_queue = queue

	return &core, nil
}

func (core *CoreDevice) Handle() vk.Device {
	return core.handle
}

func (core *CoreDevice) Physical() vk.PhysicalDevice {
	return core.selected_device
}

func (core *CoreDevice) QueueFamily() uint32 {
	return core.queue_family
}

func (core *CoreDevice) GraphicsQueue() vk.Queue {
	return core.graphics_queue
}

func (core *CoreDevice) PresentQueue() vk.Queue {
	return core.present_queue
}

func (core *CoreDevice) Name() string {
	return vk.ToString(core.selected_device_properties.DeviceName[:])
}

//WaitIdle blocks until the GPU has drained all submitted work
func (core *CoreDevice) WaitIdle() {
	vk.DeviceWaitIdle(core.handle)
}

func (core *CoreDevice) Destroy() {
	if core.handle != nil {
		vk.DestroyDevice(core.handle, nil)
		core.handle = nil
	}
}
