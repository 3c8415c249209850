package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/sgrsensor/internal/client/models"
)

var errUsage = errors.New("wrong arguments")

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", errUsage, s)
	}
	return id, nil
}

func onOff(running bool) string {
	if running {
		return "running"
	}
	return "stopped"
}

// Sensors lists every sensor with its running state.
func (a *App) Sensors(ctx context.Context) error {
	list, err := a.sensors.List(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No sensors.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPERIOD\tIN\tOUT\tSTATE")
	for _, s := range list {
		mark := ""
		if s.ID == a.sensorID {
			mark = " *"
		}
		fmt.Fprintf(w, "%d%s\t%s\t%ds\t%d\t%d\t%s\n",
			s.ID, mark, s.Name, s.SamplingPeriod, s.InputSize, s.OutputSize, onOff(s.State))
	}
	return w.Flush()
}

// Sensor shows the current sensor. With an id argument it first makes
// that sensor current.
func (a *App) Sensor(ctx context.Context, args []string) error {
	id := a.sensorID
	if len(args) > 0 {
		var err error
		if id, err = parseID(args[0]); err != nil {
			return err
		}
	}

	s, err := a.sensors.Get(ctx, id)
	if err != nil {
		return err
	}
	a.sensorID = s.ID

	fmt.Fprintf(a.out, "Sensor %d: %s\n", s.ID, s.Name)
	if s.Description != "" {
		fmt.Fprintln(a.out, s.Description)
	}
	fmt.Fprintf(a.out, "Sampling period %ds, %d inputs, %d outputs, %s\n",
		s.SamplingPeriod, s.InputSize, s.OutputSize, onOff(s.State))
	return nil
}

func (a *App) Start(ctx context.Context) error {
	if err := a.sensors.Start(ctx, a.sensorID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sensor %d started.\n", a.sensorID)
	return nil
}

func (a *App) Stop(ctx context.Context) error {
	if err := a.sensors.Stop(ctx, a.sensorID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sensor %d stopped.\n", a.sensorID)
	return nil
}

func (a *App) State(ctx context.Context) error {
	running, err := a.sensors.State(ctx, a.sensorID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sensor %d is %s.\n", a.sensorID, onOff(running))
	return nil
}

// Mode prints the operating mode, or sets it when given an argument.
func (a *App) Mode(ctx context.Context, args []string) error {
	if len(args) == 0 {
		mode, err := a.sensors.Mode(ctx, a.sensorID)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Sensor %d mode: %d\n", a.sensorID, mode)
		return nil
	}

	mode, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q is not a mode", errUsage, args[0])
	}
	mode, err = a.sensors.SetMode(ctx, a.sensorID, mode)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sensor %d mode set to %d.\n", a.sensorID, mode)
	return nil
}

// Signals lists the signals of the current sensor.
func (a *App) Signals(ctx context.Context) error {
	list, err := a.sensors.Signals(ctx, a.sensorID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintf(a.out, "Sensor %d has no signals.\n", a.sensorID)
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tGROUP\tVALUE\tSETPOINT\tRANGE\tUNIT")
	for _, s := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Name, s.Group, formatValue(s.Value), setpointOf(s), rangeOf(s), s.Unit)
	}
	return w.Flush()
}

func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func setpointOf(s models.Signal) string {
	if s.Group == models.GroupOutput {
		return "-"
	}
	return strconv.FormatFloat(s.Setpoint, 'g', -1, 64)
}

func rangeOf(s models.Signal) string {
	if s.Group == models.GroupOutput {
		return "-"
	}
	return fmt.Sprintf("%g..%g/%g", s.SetpointMin, s.SetpointMax, s.SetpointStep)
}

// Setpoint changes the setpoint of one input signal: setpoint <id> <value>.
func (a *App) Setpoint(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage setpoint <signal id> <value>", errUsage)
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", errUsage, args[1])
	}

	s, err := a.signals.SetSetpoint(ctx, id, v)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s setpoint is %g %s.\n", s.Name, s.Setpoint, s.Unit)
	return nil
}

// Data prints the samples of the current sensor over the last minutes
// (default 5): data [minutes].
func (a *App) Data(ctx context.Context, args []string) error {
	minutes := 5
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n <= 0 {
			return fmt.Errorf("%w: %q is not a number of minutes", errUsage, args[0])
		}
		minutes = n
	}

	end := time.Now()
	data, err := a.sensors.Data(ctx, a.sensorID, end.Add(-time.Duration(minutes)*time.Minute), end)
	if err != nil {
		return err
	}
	if len(data.DateTime) == 0 {
		fmt.Fprintln(a.out, "No data in this window.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	header := []string{"TIME"}
	for _, s := range data.Values {
		header = append(header, s.Name)
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for i, ts := range data.DateTime {
		row := []string{ts}
		for _, s := range data.Values {
			cell := "-"
			if i < len(s.Value) {
				cell = strconv.FormatFloat(s.Value[i], 'g', 6, 64)
			}
			row = append(row, cell)
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// Users lists the registered users.
func (a *App) Users(ctx context.Context) error {
	list, err := a.users.List(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMAIL\tNAME\tROLE")
	for _, u := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", u.ID, u.Email, u.FullName(), u.Role)
	}
	return w.Flush()
}
