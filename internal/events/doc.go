// Package events streams live notifications from a SoundTouch device.
//
// SoundTouch speakers push state changes (volume, now playing, presets)
// over a WebSocket on port 8080 using the "gabbo" subprotocol. This
// package wraps that socket in a channel of typed notifications, used by
// the wavetap watch command.
//
// # Usage Example
//
//	listener := events.NewListener()
//	notifications, err := listener.Listen(ctx, "192.168.1.100")
//	if err != nil {
//	    return err
//	}
//	for n := range notifications {
//	    fmt.Printf("%s: %s\n", n.Type, n.Raw)
//	}
//
// The channel closes when the context is canceled or the device drops the
// connection; callers just range over it.
package events
