package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeAppointmentStatsTodayAndWeek(t *testing.T) {
	// Quarta-feira, 15/04/2026. Semana ISO: seg 13 a dom 19.
	now := time.Date(2026, time.April, 15, 14, 30, 0, 0, time.UTC)

	appts := []entity.Appointment{
		{ID: "1", Date: day(2026, time.April, 15), Status: "agendado"},   // hoje
		{ID: "2", Date: day(2026, time.April, 13), Status: "confirmado"}, // segunda
		{ID: "3", Date: day(2026, time.April, 19), Status: "realizado"},  // domingo fecha a semana
		{ID: "4", Date: day(2026, time.April, 20), Status: "agendado"},   // semana seguinte
		{ID: "5", Date: day(2026, time.April, 12), Status: "cancelado"},  // domingo anterior
	}

	s := ComputeAppointmentStats(appts, now)
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 1, s.Today)
	assert.Equal(t, 3, s.ThisWeek)
	assert.Equal(t, 2, s.Scheduled)
	assert.Equal(t, 1, s.Confirmed)
	assert.Equal(t, 1, s.Done)
}

// A data civil do agendamento não pode deslizar de dia quando o "agora"
// vem em outro fuso.
func TestSameDayIgnoresTimezone(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Skip("tzdata indisponível")
	}
	nowSP := time.Date(2026, time.April, 15, 22, 0, 0, 0, sp)
	appts := []entity.Appointment{
		{ID: "1", Date: day(2026, time.April, 15), Status: "agendado"},
	}
	s := ComputeAppointmentStats(appts, nowSP)
	assert.Equal(t, 1, s.Today)
}

func TestUpcomingSkipsPastAndClosed(t *testing.T) {
	now := time.Date(2026, time.April, 15, 9, 0, 0, 0, time.UTC)
	appts := []entity.Appointment{
		{ID: "passado", Date: day(2026, time.April, 10), Status: "agendado"},
		{ID: "hoje", Date: day(2026, time.April, 15), Status: "agendado"},
		{ID: "cancelado", Date: day(2026, time.April, 16), Status: "cancelado"},
		{ID: "feito", Date: day(2026, time.April, 16), Status: "realizado"},
		{ID: "futuro", Date: day(2026, time.April, 17), Status: "confirmado"},
	}

	got := Upcoming(appts, now, 5)
	ids := make([]string, len(got))
	for i, a := range got {
		ids[i] = a.ID
	}
	assert.Equal(t, []string{"hoje", "futuro"}, ids)
}

func TestUpcomingRespectsLimit(t *testing.T) {
	now := time.Date(2026, time.April, 15, 9, 0, 0, 0, time.UTC)
	var appts []entity.Appointment
	for i := 0; i < 10; i++ {
		appts = append(appts, entity.Appointment{
			ID:     string(rune('a' + i)),
			Date:   day(2026, time.April, 16+i),
			Status: "agendado",
		})
	}
	assert.Len(t, Upcoming(appts, now, 5), 5)
}

func TestForDay(t *testing.T) {
	appts := []entity.Appointment{
		{ID: "1", Date: day(2026, time.April, 15)},
		{ID: "2", Date: day(2026, time.April, 16)},
	}
	got := ForDay(appts, day(2026, time.April, 15))
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestIsoWeekSundayClosesTheWeek(t *testing.T) {
	// Domingo 19/04 pertence à semana que começou segunda 13/04.
	sunday := time.Date(2026, time.April, 19, 10, 0, 0, 0, time.UTC)
	start, end := isoWeek(sunday)
	assert.Equal(t, day(2026, time.April, 13), start)
	assert.Equal(t, day(2026, time.April, 20), end)
}
