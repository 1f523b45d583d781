package app

import (
	"net/url"

	"snesio/pkg/app/config"
	"snesio/pkg/mqtt"
	"snesio/pkg/passthru"
	"snesio/pkg/pulse"
	"snesio/pkg/raspberry"
	"snesio/pkg/snes"

	"github.com/gofiber/fiber/v2"
	"github.com/womat/debug"
)

// App is the main application struct.
// App is where the application is wired up.
type App struct {
	// web is the fiber web framework instance
	web *fiber.App

	// config is the application configuration
	config *config.Config

	// urlParsed contains the parsed Config.Webserver.URL parameter
	urlParsed *url.URL

	// mqtt is the handler to the mqtt broker
	mqtt *mqtt.Handler

	// gpio is the handler to the gpio backend
	gpio raspberry.GPIO

	// engine is the controller bus protocol engine
	engine *snes.Engine

	// shifters are the transmission peripherals of the bound
	// pass-through ports; owned here for shutdown
	shifters []*passthru.LineShifter

	// shutdown signals application shutdown
	shutdown chan struct{}
}

// New checks the web server URL and initializes the main app structure.
func New(cfg *config.Config) (*App, error) {
	u, err := url.Parse(cfg.Webserver.URL)
	if err != nil {
		debug.ErrorLog.Printf("Error parsing url %q: %s", cfg.Webserver.URL, err.Error())
		return &App{}, err
	}

	return &App{
		config:    cfg,
		urlParsed: u,

		web:  fiber.New(),
		mqtt: mqtt.New(),

		shutdown: make(chan struct{}),
	}, nil
}

// Run starts the application.
func (app *App) Run() error {
	if err := app.init(); err != nil {
		return err
	}

	if err := app.engine.Run(); err != nil {
		return err
	}

	go app.mqtt.Service()
	go app.runWebServer()
	go app.monitor()

	return nil
}

// init wires the engine to its physical lines. Every failure here is
// fatal: without the bus there is no functionality.
func (app *App) init() (err error) {
	if app.gpio, err = raspberry.Open(app.config.Driver); err != nil {
		debug.ErrorLog.Printf("can't open gpio: %v", err)
		return err
	}

	delay := pulse.SpinDelayer{}

	latch, clock, data, err := app.busPins(app.config.Bus)
	if err != nil {
		return err
	}

	ports := make([]*passthru.Port, 0, len(app.config.Ports))
	for i, pc := range app.config.Ports {
		pLatch, pClock, pData, err := app.busPins(config.BusConfig(pc))
		if err != nil {
			return err
		}

		gen := pulse.New(pLatch, pClock, delay)
		shifter := passthru.NewLineShifter(gen, pData, delay)

		app.shifters = append(app.shifters, shifter)
		ports = append(ports, passthru.NewPort(i, shifter))
	}

	app.engine = snes.New(latch, clock, data, delay, app.config.Interval, ports)

	if err = app.mqtt.Connect(app.config.MQTT.Connection); err != nil {
		debug.ErrorLog.Printf("can't open mqtt broker %v", err)
		return err
	}

	// initDefaultRoutes should always be called last because it may
	// access things which must be initialized before.
	app.initDefaultRoutes()

	return nil
}

// busPins requests the three lines of one bus.
func (app *App) busPins(bus config.BusConfig) (latch, clock, data raspberry.Pin, err error) {
	if latch, err = app.gpio.NewPin(bus.Latch); err != nil {
		debug.ErrorLog.Printf("can't open latch pin %v: %v", bus.Latch, err)
		return
	}
	if clock, err = app.gpio.NewPin(bus.Clock); err != nil {
		debug.ErrorLog.Printf("can't open clock pin %v: %v", bus.Clock, err)
		return
	}
	if data, err = app.gpio.NewPin(bus.Data); err != nil {
		debug.ErrorLog.Printf("can't open data pin %v: %v", bus.Data, err)
		return
	}
	return
}

// Shutdown returns the read only shutdown channel.
// Shutdown is used to be able to react on application shutdown. (see cmd/snesio.go)
func (app *App) Shutdown() <-chan struct{} {
	return app.shutdown
}

func (app *App) Close() error {
	if app.shutdown != nil {
		close(app.shutdown)
	}

	if app.engine != nil {
		_ = app.engine.Stop()
	}

	for _, s := range app.shifters {
		_ = s.Close()
	}

	if app.mqtt != nil {
		_ = app.mqtt.Disconnect()
	}

	if app.gpio != nil {
		_ = app.gpio.Close()
	}

	return nil
}
