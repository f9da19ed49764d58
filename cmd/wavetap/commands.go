package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/wavetap/wavetap/internal/config"
	"github.com/wavetap/wavetap/internal/discovery"
	"github.com/wavetap/wavetap/internal/events"
	"github.com/wavetap/wavetap/internal/inventory"
	"github.com/wavetap/wavetap/internal/soundtouch"
	"github.com/wavetap/wavetap/internal/syncer"
)

// Command flags
var (
	storePath    string
	scanTimeout  int
	noMulticast  bool
	manualIPs    []string
	watchIP      string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Inventory file path (default: config dir)")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(watchCmd)
}

// discoverCmd runs discovery without touching the inventory
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover SoundTouch devices on the network",
	Long: `Discover SoundTouch devices without updating the inventory.

Sends an SSDP M-SEARCH to the local network, fetches each responder's
description document, and lists the devices that identify as SoundTouch
speakers. Manually configured devices are listed as well.`,
	Example: `  # Discover with the default 5-second window
  wavetap discover

  # Longer window for slow networks
  wavetap discover --timeout 10

  # Skip multicast, list manual devices only
  wavetap discover --no-multicast --manual 10.0.0.5`,
	RunE: runDiscover,
}

// syncCmd reconciles discovered devices into the inventory
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Discover devices and update the inventory",
	Long: `Discover SoundTouch devices and reconcile them into the inventory.

Each discovered device is queried directly for its identity (stable device
ID, name, firmware), and the inventory record for that ID is inserted or
updated. Devices that do not answer are counted as failed; one dead device
never aborts the run.`,
	Example: `  # Full sync
  wavetap sync

  # Sync only manually configured devices
  wavetap sync --no-multicast --manual 10.0.0.5 --manual 10.0.0.6`,
	RunE: runSync,
}

// listCmd prints the persisted inventory
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List devices in the inventory",
	Long:  `List every device in the persisted inventory, ordered by device ID.`,
	RunE:  runList,
}

// watchCmd streams live notifications from one device
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream live notifications from a device",
	Long: `Connect to a device's notification socket and print every update it
pushes (volume changes, now playing, presets) until interrupted.`,
	Example: `  wavetap watch --device 192.168.1.100`,
	RunE:    runWatch,
}

func init() {
	for _, cmd := range []*cobra.Command{discoverCmd, syncCmd} {
		cmd.Flags().IntVar(&scanTimeout, "timeout", 0, "Multicast response window in seconds (default: config)")
		cmd.Flags().BoolVar(&noMulticast, "no-multicast", false, "Skip the multicast probe")
		cmd.Flags().StringArrayVar(&manualIPs, "manual", nil, "Additional device IP (repeatable)")
	}

	watchCmd.Flags().StringVar(&watchIP, "device", "", "Device IP address")
	_ = watchCmd.MarkFlagRequired("device")
}

// discoveryOptions merges flags over the loaded settings
func discoveryOptions(settings *config.Settings) discovery.Options {
	opts := discovery.Options{
		EnableMulticast: settings.Discovery.Enabled && !noMulticast,
		ManualIPs:       append(append([]string{}, settings.ManualIPs...), manualIPs...),
		Timeout:         settings.DiscoveryTimeout(),
	}
	if scanTimeout > 0 {
		opts.Timeout = time.Duration(scanTimeout) * time.Second
	}
	return opts
}

// openStore opens the inventory file, honoring --store and the config
// override, falling back to the config directory
func openStore(settings *config.Settings) (*inventory.FileStore, error) {
	path := storePath
	if path == "" {
		path = settings.StorePath
	}
	if path == "" {
		configDir, err := config.GetConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(configDir, "inventory.yaml")
	}
	return inventory.NewFileStore(path)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	opts := discoveryOptions(settings)

	if opts.EnableMulticast {
		fmt.Printf("Discovering SoundTouch devices (window: %s)...\n\n", opts.Timeout)
	} else {
		fmt.Println("Multicast disabled - listing manually configured devices.")
		fmt.Println()
	}

	agg := discovery.NewAggregator(settings.Discovery.Vendor)
	devices := agg.Discover(opts)

	if len(devices) == 0 {
		fmt.Println("No devices found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure devices are powered on and on the same network segment")
		fmt.Println("  - Some networks filter multicast; try --manual <ip>")
		fmt.Println("  - Try increasing --timeout for slower networks")
		return nil
	}

	fmt.Printf("Found %d device(s):\n\n", len(devices))
	for i, device := range devices {
		fmt.Printf("%d. %s\n", i+1, device.Name)
		if device.Model != "" {
			fmt.Printf("   Model: %s\n", device.Model)
		}
		fmt.Printf("   IP:    %s:%d\n", device.IP, device.Port)
		if device.MAC != "" {
			fmt.Printf("   ID:    %s\n", device.MAC)
		}
		fmt.Println()
	}

	fmt.Println("Use 'wavetap sync' to reconcile these into the inventory")
	return nil
}

func runSync(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	store, err := openStore(settings)
	if err != nil {
		return err
	}

	engine := syncer.New(
		discovery.NewAggregator(settings.Discovery.Vendor),
		soundtouch.NewClient(),
		store,
		discoveryOptions(settings),
	)

	fmt.Println("Syncing inventory...")

	result, err := engine.Sync(cmd.Context())
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}

	fmt.Printf("\nDiscovered: %d\n", result.Discovered)
	fmt.Printf("Synced:     %d\n", result.Synced)
	fmt.Printf("Failed:     %d\n", result.Failed)

	if result.Failed > 0 {
		fmt.Println("\nFailed devices were unreachable or answered incorrectly;")
		fmt.Println("they keep their previous inventory entry, if any.")
	}

	fmt.Printf("\nInventory: %s\n", store.Path())
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	store, err := openStore(settings)
	if err != nil {
		return err
	}

	records, err := store.GetAll()
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("Inventory is empty. Run 'wavetap sync' first.")
		return nil
	}

	fmt.Printf("%d device(s) in inventory:\n\n", len(records))
	for _, record := range records {
		fmt.Printf("%s  %s\n", record.DeviceID, record.Name)
		if record.Model != "" {
			fmt.Printf("    Model:    %s\n", record.Model)
		}
		fmt.Printf("    IP:       %s\n", record.IP)
		if record.FirmwareVersion != "" {
			fmt.Printf("    Firmware: %s\n", record.FirmwareVersion)
		}
		fmt.Printf("    Seen:     %s\n", record.LastSeen.Format(time.RFC3339))
		fmt.Println()
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Printf("Watching %s (Ctrl-C to stop)...\n\n", watchIP)

	listener := events.NewListener()
	notifications, err := listener.Listen(ctx, watchIP)
	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}

	for notification := range notifications {
		fmt.Printf("[%s] %s\n", notification.ReceivedAt.Format("15:04:05"), notification.Type)
	}

	fmt.Println("Connection closed.")
	return nil
}
