package paintvk

import (
	"fmt"
	"log"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

const ValidationLayerName = "VK_LAYER_KHRONOS_validation"

//DebugReportExtensionName enables the diagnostic callback when validation is on
const DebugReportExtensionName = "VK_EXT_debug_report"

//HasValidationLayerSupport reports whether the bundled validation layer is
//present on the platform. Requesting validation without it is a capability
//error and fatal at startup
func HasValidationLayerSupport() bool {
	layers, err := ValidationLayers()
	if err != nil {
		return false
	}
	for _, name := range layers {
		if name == ValidationLayerName {
			return true
		}
	}
	return false
}

//dbgCallbackFunc routes layer diagnostics to the process log classified by
//severity. Observability only, never a control path
func dbgCallbackFunc(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
	object uint64, location uint, messageCode int32, pLayerPrefix string,
	pMessage string, pUserData unsafe.Pointer) vk.Bool32 {

	switch {
	case flags&vk.DebugReportFlags(vk.DebugReportErrorBit) != 0:
		log.Printf("ERROR: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportWarningBit) != 0:
		log.Printf("WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportPerformanceWarningBit) != 0:
		log.Printf("PERFORMANCE WARNING: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	case flags&vk.DebugReportFlags(vk.DebugReportDebugBit) != 0:
		log.Printf("DEBUG: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	default:
		log.Printf("INFORMATION: [%s] Code %d : %s", pLayerPrefix, messageCode, pMessage)
	}
	// Do not bail out of the triggering call, mirror behavior without layers
	return vk.Bool32(vk.False)
}

//NewDebugCallback registers the diagnostic callback for warning and error
//reports on the given instance
func NewDebugCallback(instance vk.Instance) (vk.DebugReportCallback, error) {
	var callback vk.DebugReportCallback
	ret := vk.CreateDebugReportCallback(instance, &vk.DebugReportCallbackCreateInfo{
		SType:       vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags:       vk.DebugReportFlags(vk.DebugReportErrorBit | vk.DebugReportWarningBit | vk.DebugReportPerformanceWarningBit),
		PfnCallback: dbgCallbackFunc,
	}, nil, &callback)
	if isError(ret) {
		return callback, fmt.Errorf("creating debug report callback: %w", NewError(ret))
	}
	return callback, nil
}
