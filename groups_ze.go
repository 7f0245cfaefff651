package ddi

// ZE is the core api.
var ZE = newAPI("ze",
	group("Global", "Init"),
	group("Driver", "Get", "GetApiVersion", "GetProperties", "GetIpcProperties",
		"GetExtensionProperties", "GetExtensionFunctionAddress"),
	optional("DriverExp", "RTASFormatCompatibilityCheckExp"),
	group("Device", "Get", "GetSubDevices", "GetProperties", "GetComputeProperties",
		"GetModuleProperties", "GetCommandQueueGroupProperties", "GetMemoryProperties",
		"GetMemoryAccessProperties", "GetCacheProperties", "GetImageProperties",
		"GetExternalMemoryProperties", "GetP2PProperties", "CanAccessPeer", "GetStatus",
		"GetGlobalTimestamps", "ReserveCacheExt", "SetCacheAdviceExt"),
	optional("DeviceExp", "GetFabricVertexExp"),
	group("Context", "Create", "Destroy", "GetStatus", "SystemBarrier", "MakeMemoryResident",
		"EvictMemory", "MakeImageResident", "EvictImage", "CreateEx"),
	group("CommandQueue", "Create", "Destroy", "ExecuteCommandLists", "Synchronize"),
	group("CommandList", "Create", "CreateImmediate", "Destroy", "Close", "Reset",
		"AppendWriteGlobalTimestamp", "AppendBarrier", "AppendMemoryRangesBarrier",
		"AppendMemoryCopy", "AppendMemoryFill", "AppendMemoryCopyRegion",
		"AppendMemoryCopyFromContext", "AppendImageCopy", "AppendImageCopyRegion",
		"AppendImageCopyToMemory", "AppendImageCopyFromMemory", "AppendMemoryPrefetch",
		"AppendMemAdvise", "AppendSignalEvent", "AppendWaitOnEvents", "AppendEventReset",
		"AppendQueryKernelTimestamps", "AppendLaunchKernel", "AppendLaunchCooperativeKernel",
		"AppendLaunchKernelIndirect", "AppendLaunchMultipleKernelsIndirect"),
	optional("CommandListExp", "GetNextCommandIdExp", "UpdateMutableCommandsExp",
		"UpdateMutableCommandSignalEventExp", "UpdateMutableCommandWaitEventsExp",
		"CreateCloneExp", "ImmediateAppendCommandListsExp"),
	group("Event", "Create", "Destroy", "HostSignal", "HostSynchronize", "QueryStatus",
		"HostReset", "QueryKernelTimestamp"),
	optional("EventExp", "QueryTimestampsExp"),
	group("EventPool", "Create", "Destroy", "GetIpcHandle", "OpenIpcHandle", "CloseIpcHandle"),
	group("Fence", "Create", "Destroy", "HostSynchronize", "QueryStatus", "Reset"),
	group("Image", "GetProperties", "Create", "Destroy"),
	optional("ImageExp", "GetMemoryPropertiesExp", "ViewCreateExp"),
	group("Kernel", "Create", "Destroy", "SetCacheConfig", "SetGroupSize", "SuggestGroupSize",
		"SuggestMaxCooperativeGroupCount", "SetArgumentValue", "SetIndirectAccess",
		"GetIndirectAccess", "GetSourceAttributes", "GetProperties", "GetName"),
	optional("KernelExp", "SetGlobalOffsetExp", "SchedulingHintExp"),
	group("Mem", "AllocShared", "AllocDevice", "AllocHost", "Free", "GetAllocProperties",
		"GetAddressRange", "GetIpcHandle", "OpenIpcHandle", "CloseIpcHandle"),
	optional("MemExp", "GetIpcHandleFromFileDescriptorExp", "GetFileDescriptorFromIpcHandleExp",
		"SetAtomicAccessAttributeExp", "GetAtomicAccessAttributeExp"),
	group("Module", "Create", "Destroy", "DynamicLink", "GetNativeBinary", "GetGlobalPointer",
		"GetKernelNames", "GetProperties", "GetFunctionPointer"),
	group("ModuleBuildLog", "Destroy", "GetString"),
	group("PhysicalMem", "Create", "Destroy"),
	group("Sampler", "Create", "Destroy"),
	group("VirtualMem", "Reserve", "Free", "QueryPageSize", "Map", "Unmap",
		"SetAccessAttribute", "GetAccessAttribute"),
	optional("FabricEdgeExp", "GetExp", "GetVerticesExp", "GetPropertiesExp"),
	optional("FabricVertexExp", "GetExp", "GetSubVerticesExp", "GetPropertiesExp", "GetDeviceExp"),
	optional("RTASBuilder", "CreateExt", "GetBuildPropertiesExt", "BuildExt",
		"CommandListAppendCopyExt", "DestroyExt"),
	optional("RTASBuilderExp", "CreateExp", "GetBuildPropertiesExp", "BuildExp", "DestroyExp"),
	optional("RTASParallelOperation", "CreateExt", "GetPropertiesExt", "JoinExt", "DestroyExt"),
	optional("RTASParallelOperationExp", "CreateExp", "GetPropertiesExp", "JoinExp", "DestroyExp"),
)
