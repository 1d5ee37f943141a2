package paintvk

import (
	"fmt"
	"log"

	vk "github.com/vulkan-go/vulkan"
)

const EngineName = "PaintGraphicsEngine"

//NewInstance creates the vulkan instance with the window system's required
//extensions and, when validation is enabled, the validation layer and the
//debug report extension. A missing validation layer is a capability error
func NewInstance(config CoreConfig, display *CoreDisplay) (vk.Instance, error) {

	wanted := display.RequiredExtensions()
	var layers []string

	if config.EnableValidation {
		if !HasValidationLayerSupport() {
			return nil, fmt.Errorf("validation layers requested, but not available")
		}
		layers = []string{ValidationLayerName}
		wanted = append(wanted, DebugReportExtensionName)
	}

	actual, err := InstanceExtensions()
	if err != nil {
		return nil, err
	}
	extensions, missing := checkExisting(actual, wanted)
	if missing > 0 {
		log.Println("vulkan warning: missing", missing, "required instance extensions during init")
	}

	var instance vk.Instance
	ret := vk.CreateInstance(&vk.InstanceCreateInfo{
		SType: vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &vk.ApplicationInfo{
			SType:              vk.StructureTypeApplicationInfo,
			ApiVersion:         uint32(vk.MakeVersion(1, 1, 0)),
			ApplicationVersion: uint32(vk.MakeVersion(1, 0, 0)),
			EngineVersion:      uint32(vk.MakeVersion(1, 0, 0)),
			PApplicationName:   safeString(config.AppName),
			PEngineName:        safeString(EngineName),
		},
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     safeStrings(layers),
	}, nil, &instance)

	if isError(ret) {
		return nil, fmt.Errorf("failed to create instance: %w", NewError(ret))
	}

	vk.InitInstance(instance)
	return instance, nil
}
