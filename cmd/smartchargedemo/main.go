// Command smartchargedemo is an interactive harness for the smart charging
// core: a readline shell that installs charging profiles and queries the
// composite schedule by hand, following the example pack's
// chzyer/readline-based debug worker and the teacher's LoadBalancer's
// event-driven wiring.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"smartcharge/clock"
	"smartcharge/devicemodel"
	"smartcharge/evse"
	"smartcharge/internal/config"
	"smartcharge/internal/logging"
	"smartcharge/ocpp"
	ocppsc "smartcharge/ocpp/smartcharging"
	"smartcharge/power"
	"smartcharge/smartcharging"
	"smartcharge/types"
)

// noopStation is a power.Handler that logs what it would send instead of
// opening a real OCPP-J connection, since the core's Non-goals exclude
// transport.
type noopStation struct {
	log *logging.Logger
}

func (s *noopStation) SendRequest(stationId string, request ocpp.Request) (ocpp.Response, error) {
	s.log.Debug(fmt.Sprintf("would send %s to %s", request.GetFeatureName(), stationId))
	return nil, nil
}

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		log.Println("using built-in defaults:", err)
		cfg = builtinConfig()
	}

	logger := logging.New()
	logger.SetDebugMode(cfg.IsDebug != nil && *cfg.IsDebug)
	stationId := uuid.NewString()[:8]

	dm := &devicemodel.Static{
		ChargingScheduleChargingRateUnit: cfg.DeviceModel.ChargingScheduleChargingRateUnit,
		SupplyPhases:                     cfg.DeviceModel.SupplyPhases,
		PhaseSwitchingSupported:          cfg.DeviceModel.ACPhaseSwitchingSupported,
		TxStartPoint:                     cfg.DeviceModel.TxStartPoint,
	}
	registry := evse.Static{
		1: &evse.StaticView{Phase: evse.PhaseTypeAC},
		2: &evse.StaticView{Phase: evse.PhaseTypeAC},
	}

	core := smartcharging.New(registry, dm, clock.System{}, logger)
	controller := power.NewController(core, &noopStation{log: logger}, logger)

	fmt.Printf("smart charging demo station %s (evses: 1, 2)\n", stationId)
	fmt.Println("type 'help' for commands, 'quit' to exit")

	rl, err := readline.NewEx(&readline.Config{Prompt: stationId + "> "})
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = rl.Close() }()

	nextProfileId := 100

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			return
		}
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "help":
			printHelp()

		case "boot":
			limit, perr := parseFloat(fields, 1)
			if perr != nil {
				fmt.Println(perr)
				continue
			}
			if err := controller.OnStationBoot(stationId, *types.NewDateTime(clock.System{}.Now()), limit); err != nil {
				fmt.Println("error:", err)
			}

		case "start":
			evseId, txId, limit, perr := parseStartArgs(fields)
			if perr != nil {
				fmt.Println(perr)
				continue
			}
			view, ok := registry[evseId]
			if !ok {
				fmt.Println("unknown evse", evseId)
				continue
			}
			view.Tx = &evse.Transaction{Id: txId, StartTime: clock.System{}.Now()}
			nextProfileId++
			if err := controller.OnTransactionStarted(stationId, evseId, txId, nextProfileId, limit); err != nil {
				fmt.Println("error:", err)
			}

		case "end":
			txId, perr := parseInt(fields, 1)
			if perr != nil {
				fmt.Println(perr)
				continue
			}
			controller.OnTransactionEnded(stationId, txId)
			for _, v := range registry {
				if v.Tx != nil && v.Tx.Id == txId {
					v.Tx = nil
				}
			}

		case "schedule":
			evseId, seconds, perr := parseScheduleArgs(fields)
			if perr != nil {
				fmt.Println(perr)
				continue
			}
			now := clock.System{}.Now()
			windowEnd := now.Add(time.Duration(seconds) * time.Second)
			resp := controller.Schedule(stationId, evseId, *types.NewDateTime(now), *types.NewDateTime(windowEnd), types.ChargingRateUnitWatts)
			printSchedule(resp.Schedule)

		case "clear":
			evseId, perr := parseInt(fields, 1)
			if perr != nil {
				fmt.Println(perr)
				continue
			}
			req := ocppsc.NewClearChargingProfileRequest()
			req.EvseId = &evseId
			resp := controller.ClearProfiles(stationId, req)
			fmt.Println("status:", resp.Status)

		case "list":
			for _, p := range core.GetProfiles() {
				fmt.Printf("  id=%d purpose=%s kind=%s stackLevel=%d\n", p.Id, p.ChargingProfilePurpose, p.ChargingProfileKind, p.StackLevel)
			}

		case "quit", "exit":
			return

		default:
			fmt.Println("unknown command, try 'help'")
		}
	}
}

func printHelp() {
	fmt.Println("commands:")
	fmt.Println("  boot <watts>                         - set or clear (0) the station default limit")
	fmt.Println("  start <evseId> <txId> <watts>         - start a transaction and cap its limit")
	fmt.Println("  end <txId>                            - end a transaction, clearing its profile")
	fmt.Println("  schedule <evseId> <seconds>            - print the composite schedule")
	fmt.Println("  clear <evseId>                         - clear all profiles on an evse")
	fmt.Println("  list                                  - list stored profiles")
	fmt.Println("  quit")
}

func printSchedule(schedule *types.CompositeSchedule) {
	fmt.Printf("evse=%d duration=%ds\n", schedule.EvseId, schedule.Duration)
	for _, p := range schedule.ChargingSchedulePeriod {
		fmt.Printf("  +%ds: %.1f%s\n", p.StartPeriod, p.Limit, schedule.ChargingRateUnit)
	}
}

func parseFloat(fields []string, i int) (float64, error) {
	if len(fields) <= i {
		return 0, fmt.Errorf("missing argument")
	}
	return strconv.ParseFloat(fields[i], 64)
}

func parseInt(fields []string, i int) (int, error) {
	if len(fields) <= i {
		return 0, fmt.Errorf("missing argument")
	}
	return strconv.Atoi(fields[i])
}

func parseStartArgs(fields []string) (evseId, txId int, limit float64, err error) {
	if len(fields) < 4 {
		return 0, 0, 0, fmt.Errorf("usage: start <evseId> <txId> <watts>")
	}
	evseId, err = strconv.Atoi(fields[1])
	if err != nil {
		return
	}
	txId, err = strconv.Atoi(fields[2])
	if err != nil {
		return
	}
	limit, err = strconv.ParseFloat(fields[3], 64)
	return
}

func parseScheduleArgs(fields []string) (evseId, seconds int, err error) {
	if len(fields) < 3 {
		return 0, 0, fmt.Errorf("usage: schedule <evseId> <seconds>")
	}
	evseId, err = strconv.Atoi(fields[1])
	if err != nil {
		return
	}
	seconds, err = strconv.Atoi(fields[2])
	return
}

func builtinConfig() *config.Config {
	cfg := &config.Config{}
	cfg.DeviceModel.ChargingScheduleChargingRateUnit = "A,W"
	cfg.DeviceModel.SupplyPhases = 3
	cfg.DeviceModel.TxStartPoint = "PowerPathClosed"
	return cfg
}
