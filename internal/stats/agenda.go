package stats

import (
	"time"

	"github.com/xavierca1/imobi-backoffice/internal/entity"
)

type AppointmentStats struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	Confirmed int `json:"confirmed"`
	Done      int `json:"done"`
	Today     int `json:"today"`
	ThisWeek  int `json:"this_week"`
}

// ComputeAppointmentStats conta por status e por janela de calendário.
// now define o "hoje" e a semana ISO (segunda a domingo) no fuso de
// referência — o chamador injeta, os testes fixam.
func ComputeAppointmentStats(appts []entity.Appointment, now time.Time) AppointmentStats {
	s := AppointmentStats{Total: len(appts)}
	weekStart, weekEnd := isoWeek(now)
	for _, a := range appts {
		switch a.Status {
		case "agendado":
			s.Scheduled++
		case "confirmado":
			s.Confirmed++
		case "realizado":
			s.Done++
		}
		if sameDay(a.Date, now) {
			s.Today++
		}
		d := civilDate(a.Date)
		if !d.Before(weekStart) && d.Before(weekEnd) {
			s.ThisWeek++
		}
	}
	return s
}

// Upcoming são os próximos compromissos ainda em aberto (nem
// cancelados nem realizados), limitados a max itens.
func Upcoming(appts []entity.Appointment, now time.Time, max int) []entity.Appointment {
	today := civilDate(now)
	out := make([]entity.Appointment, 0, max)
	for _, a := range appts {
		if civilDate(a.Date).Before(today) {
			continue
		}
		if a.Status == "cancelado" || a.Status == "realizado" {
			continue
		}
		out = append(out, a)
		if len(out) == max {
			break
		}
	}
	return out
}

func ForDay(appts []entity.Appointment, day time.Time) []entity.Appointment {
	var out []entity.Appointment
	for _, a := range appts {
		if sameDay(a.Date, day) {
			out = append(out, a)
		}
	}
	return out
}

// Datas de agendamento são datas civis (YYYY-MM-DD, sem hora). A
// comparação usa só ano/mês/dia de cada lado — converter de fuso aqui
// deslocaria o dia.
func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// isoWeek devolve [segunda, próxima segunda) como datas civis.
func isoWeek(now time.Time) (time.Time, time.Time) {
	wd := int(now.Weekday())
	if wd == 0 {
		wd = 7 // domingo fecha a semana, não abre
	}
	start := civilDate(now).AddDate(0, 0, -(wd - 1))
	return start, start.AddDate(0, 0, 7)
}
