package ddi

// ZET is the tools api.
var ZET = newAPI("zet",
	group("Device", "GetDebugProperties"),
	group("Context", "ActivateMetricGroups"),
	group("CommandList", "AppendMetricStreamerMarker", "AppendMetricQueryBegin",
		"AppendMetricQueryEnd", "AppendMetricMemoryBarrier"),
	group("Kernel", "GetProfileInfo"),
	group("Module", "GetDebugInfo"),
	group("Debug", "Attach", "Detach", "ReadEvent", "AcknowledgeEvent", "Interrupt", "Resume",
		"ReadMemory", "WriteMemory", "GetRegisterSetProperties", "ReadRegisters",
		"WriteRegisters", "GetThreadRegisterSetProperties"),
	group("Metric", "Get", "GetProperties"),
	group("MetricGroup", "Get", "GetProperties", "CalculateMetricValues"),
	optional("MetricGroupExp", "CalculateMultipleMetricValuesExp", "GetGlobalTimestampsExp",
		"GetExportDataExp", "CalculateMetricExportDataExp"),
	group("MetricQuery", "Create", "Destroy", "Reset", "GetData"),
	group("MetricQueryPool", "Create", "Destroy"),
	group("MetricStreamer", "Open", "Close", "ReadData"),
	objectGroup("TracerExp", "Create", "Destroy", "SetPrologues", "SetEpilogues", "SetEnabled"),
)
