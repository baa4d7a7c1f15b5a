package main

import (
	"time"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/models"
	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/store"
)

// seedDemoData loads the standard kitchen setup into the in-memory store so
// the service is usable without a database.
func seedDemoData(m *store.Memory) {
	now := time.Now()

	m.AddEquipment(
		models.EquipmentSpec{ID: "eq-1", Name: "Kjøleskap 1", MinTemp: 0, MaxTemp: 4, Active: true, CreatedAt: now},
		models.EquipmentSpec{ID: "eq-2", Name: "Kjøleskap 2", MinTemp: 0, MaxTemp: 4, Active: true, CreatedAt: now},
		models.EquipmentSpec{ID: "eq-3", Name: "Fryser 1", MinTemp: -22, MaxTemp: -18, Active: true, CreatedAt: now},
		models.EquipmentSpec{ID: "eq-4", Name: "Fryser 2", MinTemp: -22, MaxTemp: -18, Active: true, CreatedAt: now},
		models.EquipmentSpec{ID: "eq-5", Name: "Varmeskap", MinTemp: 60, MaxTemp: 75, Active: true, CreatedAt: now},
	)

	m.AddStaff(
		models.Employee{ID: "emp-1", Name: "Maria Hansen", Role: models.RoleSupervisor, Active: true},
		models.Employee{ID: "emp-2", Name: "Jonas Berg", Role: models.RoleSupervisor, Active: true},
		models.Employee{ID: "emp-3", Name: "Sofia Larsen", Role: models.RoleSupervisor, Active: true},
		models.Employee{ID: "emp-4", Name: "Ali Ahmed", Role: models.RoleStaff, Active: true},
		models.Employee{ID: "emp-5", Name: "Emma Nilsen", Role: models.RoleStaff, Active: true},
	)

	m.AddTasks(
		models.RoutineTask{ID: "task-1", NameNo: "Vask kjøkkenbenker", NameEn: "Clean kitchen counters", Icon: "🧽", SortOrder: 1, Active: true, Recurrence: models.RecurDaily},
		models.RoutineTask{ID: "task-2", NameNo: "Tøm søppel", NameEn: "Empty trash", Icon: "🗑️", SortOrder: 2, Active: true, Recurrence: models.RecurDaily},
		models.RoutineTask{ID: "task-3", NameNo: "Vask gulv", NameEn: "Mop floors", Icon: "🧹", SortOrder: 3, Active: true, Recurrence: models.RecurDaily},
		models.RoutineTask{ID: "task-4", NameNo: "Rengjør kjøleskap", NameEn: "Clean refrigerators", Icon: "❄️", SortOrder: 4, Active: true, Recurrence: models.RecurWeekly, Weekday: time.Monday},
		models.RoutineTask{ID: "task-5", NameNo: "Avrim fryser", NameEn: "Defrost freezer", Icon: "🧊", SortOrder: 5, Active: true, Recurrence: models.RecurMonthly, MonthDay: 1},
	)
}
