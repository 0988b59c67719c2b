package seeders

import (
	"encoding/json"
	"log"

	"schoolgrid_go/database"
	"schoolgrid_go/models"
	"schoolgrid_go/utils"
)

// SeedAll runs all seeders
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedUsers()
	SeedScheduleTypeConfigs()
	SeedTeachers()
	SeedRooms()
	SeedSubjects()
	SeedClasses()

	log.Println("Database seeding completed successfully!")
}

// SeedUsers seeds the users table
func SeedUsers() {
	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Users already seeded, skipping...")
		return
	}

	hashedPassword, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Username: "admin",
			Password: hashedPassword,
			Email:    "admin@schoolgrid.local",
			FullName: "System Administrator",
			Role:     "admin",
			Status:   "active",
		},
		{
			Username: "registrar",
			Password: hashedPassword,
			Email:    "registrar@schoolgrid.local",
			FullName: "Maria Santos",
			Role:     "registrar",
			Status:   "active",
		},
		{
			Username: "viewer",
			Password: hashedPassword,
			Email:    "viewer@schoolgrid.local",
			FullName: "Faculty Viewer",
			Role:     "viewer",
			Status:   "active",
		},
	}

	for _, user := range users {
		if err := database.DB.Create(&user).Error; err != nil {
			log.Printf("Error seeding user %s: %v", user.Username, err)
		}
	}

	log.Println("Users seeded successfully")
}

// SeedScheduleTypeConfigs seeds the schedule type configurations
func SeedScheduleTypeConfigs() {
	var count int64
	database.DB.Model(&models.ScheduleTypeConfig{}).Count(&count)
	if count > 0 {
		log.Println("Schedule type configs already seeded, skipping...")
		return
	}

	jhsBreaks, _ := json.Marshal([]map[string]interface{}{
		{"start": "9:45 AM", "end": "10:00 AM", "step": 15, "label": "Morning Recess"},
		{"start": "12:00 PM", "end": "1:00 PM", "step": 60, "label": "Lunch Break"},
		{"start": "3:00 PM", "end": "3:15 PM", "step": 15, "label": "Afternoon Recess"},
	})
	shsBreaks, _ := json.Marshal([]map[string]interface{}{
		{"start": "9:30 AM", "end": "9:45 AM", "step": 15, "label": "Morning Recess"},
		{"start": "11:45 AM", "end": "12:45 PM", "step": 60, "label": "Lunch Break"},
	})
	// SHS Friday afternoons are reserved for homeroom, so break cells stay
	// selectable that day
	shsExceptions, _ := json.Marshal([]string{"Friday"})
	weekdays, _ := json.Marshal([]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"})

	configs := []models.ScheduleTypeConfig{
		{
			Code:        "jhs",
			Name:        "Junior High School",
			DayStart:    "7:45 AM",
			DayEnd:      "5:15 PM",
			StepMinutes: 60,
			Breaks:      jhsBreaks,
			Weekdays:    weekdays,
		},
		{
			Code:            "shs",
			Name:            "Senior High School",
			DayStart:        "7:00 AM",
			DayEnd:          "6:00 PM",
			StepMinutes:     60,
			Breaks:          shsBreaks,
			BreakExceptions: shsExceptions,
			Weekdays:        weekdays,
		},
	}

	for _, cfg := range configs {
		if err := database.DB.Create(&cfg).Error; err != nil {
			log.Printf("Error seeding schedule type config %s: %v", cfg.Code, err)
		}
	}

	log.Println("Schedule type configs seeded successfully")
}

// SeedTeachers seeds the teachers table
func SeedTeachers() {
	var count int64
	database.DB.Model(&models.Teacher{}).Count(&count)
	if count > 0 {
		log.Println("Teachers already seeded, skipping...")
		return
	}

	teachers := []models.Teacher{
		{
			FirstName:      "Elena",
			LastName:       "Reyes",
			Email:          "elena.reyes@schoolgrid.local",
			Department:     "English",
			Specialization: "Literature, Creative Writing",
			Active:         true,
		},
		{
			FirstName:      "Jose",
			LastName:       "Dela Cruz",
			Email:          "jose.delacruz@schoolgrid.local",
			Department:     "Mathematics",
			Specialization: "Algebra, Statistics",
			Active:         true,
		},
		{
			FirstName:      "Ana",
			LastName:       "Lim",
			Email:          "ana.lim@schoolgrid.local",
			Department:     "Science",
			Specialization: "Biology, Chemistry",
			Active:         true,
		},
	}

	for _, teacher := range teachers {
		if err := database.DB.Create(&teacher).Error; err != nil {
			log.Printf("Error seeding teacher %s %s: %v", teacher.FirstName, teacher.LastName, err)
		}
	}

	log.Println("Teachers seeded successfully")
}

// SeedRooms seeds the rooms table
func SeedRooms() {
	var count int64
	database.DB.Model(&models.Room{}).Count(&count)
	if count > 0 {
		log.Println("Rooms already seeded, skipping...")
		return
	}

	rooms := []models.Room{
		{Name: "Room 101", Building: "Main", Floor: "1", Capacity: 45, Type: "classroom", Status: "available"},
		{Name: "Room 202", Building: "Main", Floor: "2", Capacity: 40, Type: "classroom", Status: "available"},
		{Name: "Science Lab", Building: "Annex", Floor: "1", Capacity: 30, Type: "laboratory", Status: "available"},
		{Name: "Gymnasium", Building: "Sports Complex", Floor: "1", Capacity: 200, Type: "gym", Status: "available"},
	}

	for _, room := range rooms {
		if err := database.DB.Create(&room).Error; err != nil {
			log.Printf("Error seeding room %s: %v", room.Name, err)
		}
	}

	log.Println("Rooms seeded successfully")
}

// SeedSubjects seeds the subjects table
func SeedSubjects() {
	var count int64
	database.DB.Model(&models.Subject{}).Count(&count)
	if count > 0 {
		log.Println("Subjects already seeded, skipping...")
		return
	}

	subjects := []models.Subject{
		{Code: "ENG7", Name: "English 7", GradeLevel: "Grade 7", Units: 1, Active: true},
		{Code: "MATH7", Name: "Mathematics 7", GradeLevel: "Grade 7", Units: 1, Active: true},
		{Code: "SCI7", Name: "Science 7", GradeLevel: "Grade 7", Units: 1, Active: true},
		{Code: "FIL7", Name: "Filipino 7", GradeLevel: "Grade 7", Units: 1, Active: true},
		{Code: "PE7", Name: "Physical Education 7", GradeLevel: "Grade 7", Units: 1, Active: true},
	}

	for _, subject := range subjects {
		if err := database.DB.Create(&subject).Error; err != nil {
			log.Printf("Error seeding subject %s: %v", subject.Code, err)
		}
	}

	log.Println("Subjects seeded successfully")
}

// SeedClasses seeds the school classes table
func SeedClasses() {
	var count int64
	database.DB.Model(&models.SchoolClass{}).Count(&count)
	if count > 0 {
		log.Println("Classes already seeded, skipping...")
		return
	}

	classes := []models.SchoolClass{
		{
			Name:         "Grade 7 - Sampaguita",
			Slug:         utils.Slugify("Grade 7 - Sampaguita"),
			GradeLevel:   "Grade 7",
			SchoolYear:   "2025-2026",
			ScheduleType: "jhs",
			StudentCount: 42,
			Active:       true,
		},
		{
			Name:         "Grade 8 - Narra",
			Slug:         utils.Slugify("Grade 8 - Narra"),
			GradeLevel:   "Grade 8",
			SchoolYear:   "2025-2026",
			ScheduleType: "jhs",
			StudentCount: 40,
			Active:       true,
		},
		{
			Name:         "Grade 11 - STEM A",
			Slug:         utils.Slugify("Grade 11 - STEM A"),
			GradeLevel:   "Grade 11",
			SchoolYear:   "2025-2026",
			ScheduleType: "shs",
			StudentCount: 35,
			Active:       true,
		},
	}

	for _, class := range classes {
		if err := database.DB.Create(&class).Error; err != nil {
			log.Printf("Error seeding class %s: %v", class.Slug, err)
		}
	}

	log.Println("Classes seeded successfully")
}
