// Package soundtouch provides an HTTP client for the SoundTouch control API.
//
// SoundTouch speakers expose a local HTTP API on port 8090. This package
// implements the subset the inventory needs: querying a device's /info
// endpoint for its authoritative identity (stable device ID, name, product
// type, network addresses, firmware version).
//
// # Usage Example
//
//	client := soundtouch.NewClient()
//	info, err := client.GetInfo(ctx, "http://192.168.1.100:8090")
//	if err != nil {
//	    if soundtouch.IsConnectionError(err) {
//	        // device is offline or unreachable
//	    }
//	    return err
//	}
//	fmt.Println(info.DeviceID, info.Name)
//
// # Optional Fields
//
// Devices report identity with varying completeness across firmware
// versions. DeviceInfo makes that explicit: only DeviceID is guaranteed,
// every other field may be empty and means "not reported" when it is.
//
// # Error Handling
//
// All errors are typed DeviceError values (connection / http / parse) and
// wrap their cause for error chain inspection with errors.As and errors.Is.
//
// # Thread Safety
//
// Client instances are safe for concurrent use.
package soundtouch
