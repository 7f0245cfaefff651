package ddi

// ZES is the sysman api.
var ZES = newAPI("zes",
	optional("Global", "Init"),
	group("Device", "GetProperties", "GetState", "Reset", "ProcessesGetState",
		"PciGetProperties", "PciGetState", "PciGetBars", "PciGetStats",
		"EnumDiagnosticTestSuites", "EnumEngineGroups", "EventRegister", "EnumFabricPorts",
		"EnumFans", "EnumFirmwares", "EnumFrequencyDomains", "EnumLeds", "EnumMemoryModules",
		"EnumPerformanceFactorDomains", "EnumPowerDomains", "GetCardPowerDomain", "EnumPsus",
		"EnumRasErrorSets", "EnumSchedulers", "EnumStandbyDomains", "EnumTemperatureSensors",
		"EccAvailable", "EccConfigurable", "GetEccState", "SetEccState", "Get",
		"SetOverclockWaiver", "GetOverclockDomains", "GetOverclockControls",
		"ResetOverclockSettings", "ReadOverclockState", "EnumOverclockDomains", "ResetExt"),
	group("Driver", "EventListen", "EventListenEx", "Get", "GetExtensionProperties",
		"GetExtensionFunctionAddress"),
	group("Diagnostics", "GetProperties", "GetTests", "RunTests"),
	group("Engine", "GetProperties", "GetActivity", "GetActivityExt"),
	group("FabricPort", "GetProperties", "GetLinkType", "GetConfig", "SetConfig", "GetState",
		"GetThroughput", "GetFabricErrorCounters", "GetMultiPortThroughput"),
	group("Fan", "GetProperties", "GetConfig", "SetDefaultMode", "SetFixedSpeedMode",
		"SetSpeedTableMode", "GetState"),
	group("Firmware", "GetProperties", "Flash", "GetFlashProgress"),
	group("Frequency", "GetProperties", "GetAvailableClocks", "GetRange", "SetRange", "GetState",
		"GetThrottleTime", "OcGetCapabilities", "OcGetFrequencyTarget", "OcSetFrequencyTarget",
		"OcGetVoltageTarget", "OcSetVoltageTarget", "OcSetMode", "OcGetMode", "OcGetIccMax",
		"OcSetIccMax", "OcGetTjMax", "OcSetTjMax"),
	group("Led", "GetProperties", "GetState", "SetState", "SetColor"),
	group("Memory", "GetProperties", "GetState", "GetBandwidth"),
	optional("Overclock", "GetDomainProperties", "GetDomainVFProperties",
		"GetDomainControlProperties", "GetControlCurrentValue", "GetControlPendingValue",
		"SetControlUserValue", "GetControlState", "GetVFPointValues", "SetVFPointValues"),
	group("PerformanceFactor", "GetProperties", "GetConfig", "SetConfig"),
	group("Power", "GetProperties", "GetEnergyCounter", "GetLimits", "SetLimits",
		"GetEnergyThreshold", "SetEnergyThreshold", "GetLimitsExt", "SetLimitsExt"),
	group("Psu", "GetProperties", "GetState"),
	group("Ras", "GetProperties", "GetConfig", "SetConfig", "GetState"),
	optional("RasExp", "GetStateExp", "ClearStateExp"),
	group("Scheduler", "GetProperties", "GetCurrentMode", "GetTimeoutModeProperties",
		"GetTimesliceModeProperties", "SetTimeoutMode", "SetTimesliceMode", "SetExclusiveMode",
		"SetComputeUnitDebugMode"),
	group("Standby", "GetProperties", "GetMode", "SetMode"),
	group("Temperature", "GetProperties", "GetConfig", "SetConfig", "GetState"),
)
