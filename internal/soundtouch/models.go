package soundtouch

import "encoding/xml"

// DeviceInfo is the authoritative identity a device reports about itself
// via the /info endpoint. DeviceID is always present on a healthy device;
// every other field is optional and empty when the device omits it.
// Callers must treat empty strings as "not reported", not as values.
type DeviceInfo struct {
	// DeviceID is the stable identifier (the device's primary MAC)
	DeviceID string

	// Name is the user-assigned speaker name
	Name string

	// Type is the product type string (e.g. "SoundTouch 20")
	Type string

	// MACAddress is reported network interface address, may be empty
	MACAddress string

	// IPAddress is the address the device believes it has, may be empty
	IPAddress string

	// FirmwareVersion is the running software version, may be empty
	FirmwareVersion string
}

// infoResponse mirrors the /info XML document:
//
//	<info deviceID="9884E3AB1234">
//	  <name>Living Room</name>
//	  <type>SoundTouch 20</type>
//	  <components>
//	    <component>
//	      <softwareVersion>27.0.6.46330</softwareVersion>
//	      <serialNumber>...</serialNumber>
//	    </component>
//	  </components>
//	  <networkInfo type="SCM">
//	    <macAddress>9884E3AB1234</macAddress>
//	    <ipAddress>192.168.1.100</ipAddress>
//	  </networkInfo>
//	</info>
type infoResponse struct {
	XMLName  xml.Name `xml:"info"`
	DeviceID string   `xml:"deviceID,attr"`
	Name     string   `xml:"name"`
	Type     string   `xml:"type"`
	Components []struct {
		SoftwareVersion string `xml:"softwareVersion"`
		SerialNumber    string `xml:"serialNumber"`
	} `xml:"components>component"`
	NetworkInfo []struct {
		Type       string `xml:"type,attr"`
		MACAddress string `xml:"macAddress"`
		IPAddress  string `xml:"ipAddress"`
	} `xml:"networkInfo"`
}

// toDeviceInfo flattens the wire document into the explicit optional-field
// struct handed to callers.
func (r *infoResponse) toDeviceInfo() *DeviceInfo {
	info := &DeviceInfo{
		DeviceID: r.DeviceID,
		Name:     r.Name,
		Type:     r.Type,
	}

	// First component reporting a software version wins
	for _, component := range r.Components {
		if component.SoftwareVersion != "" {
			info.FirmwareVersion = component.SoftwareVersion
			break
		}
	}

	// First networkInfo block with an address wins
	for _, network := range r.NetworkInfo {
		if info.MACAddress == "" && network.MACAddress != "" {
			info.MACAddress = network.MACAddress
		}
		if info.IPAddress == "" && network.IPAddress != "" {
			info.IPAddress = network.IPAddress
		}
	}

	return info
}
