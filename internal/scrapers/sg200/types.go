package sg200

// MacEntry is one learned address of the dynamic mac table.
type MacEntry struct {
	Vlan int    `json:"vlan"`
	Mac  string `json:"mac"`
	// PortIndex is the interface name when it could be resolved, else the raw ifIndex.
	PortIndex string `json:"port_index"`
	SwitchIP  string `json:"switch_ip"`

	// IfIndex is the raw interface index the switch reported.
	IfIndex int `json:"-"`
}

// SystemSummary maps canonical field names to values, absent fields are omitted.
type SystemSummary map[string]string

const (
	FieldSystemDescription   = "system_description"
	FieldSystemLocation      = "system_location"
	FieldSystemContact       = "system_contact"
	FieldHostName            = "host_name"
	FieldSystemUptime        = "system_uptime"
	FieldCurrentTime         = "current_time"
	FieldBaseMacAddress      = "base_mac_address"
	FieldJumboFrames         = "jumbo_frames"
	FieldHttpService         = "http_service"
	FieldHttpsService        = "https_service"
	FieldModelDescription    = "model_description"
	FieldSerialNumber        = "serial_number"
	FieldPidVid              = "pid_vid"
	FieldFirmwareVersion     = "firmware_version"
	FieldFirmwareMd5Checksum = "firmware_md5_checksum"
	FieldBootVersion         = "boot_version"
	FieldBootMd5Checksum     = "boot_md5_checksum"
	FieldLocale              = "locale"
	FieldLanguageVersion     = "language_version"
	FieldLanguageMd5Checksum = "language_md5_checksum"
)

// summaryLabels maps the labels the summary page renders to field names.
var summaryLabels = map[string]string{
	"System Description":    FieldSystemDescription,
	"System Location":       FieldSystemLocation,
	"System Contact":        FieldSystemContact,
	"Host Name":             FieldHostName,
	"System Uptime":         FieldSystemUptime,
	"Current Time":          FieldCurrentTime,
	"Base MAC Address":      FieldBaseMacAddress,
	"Jumbo Frames":          FieldJumboFrames,
	"HTTP Service":          FieldHttpService,
	"HTTPS Service":         FieldHttpsService,
	"Model Description":     FieldModelDescription,
	"Serial Number":         FieldSerialNumber,
	"PID VID":               FieldPidVid,
	"Firmware Version":      FieldFirmwareVersion,
	"Firmware MD5 Checksum": FieldFirmwareMd5Checksum,
	"Boot Version":          FieldBootVersion,
	"Boot MD5 Checksum":     FieldBootMd5Checksum,
	"Locale":                FieldLocale,
	"Language Version":      FieldLanguageVersion,
	"Language MD5 Checksum": FieldLanguageMd5Checksum,
}

// InterfaceNameMap maps an ifIndex to the port label the UI shows, e.g. 49 -> "GE1".
type InterfaceNameMap map[int]string
