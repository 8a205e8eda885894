package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"bukarum/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open error: %v", err)
	}
	return db, mock
}

func TestAvailableRoomsExcludesOverlapsAndFiltersType(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery("FROM `rooms` WHERE NOT EXISTS \\(SELECT 1 FROM `reservations` WHERE .*reservations\\.room_id = rooms\\.id.*" +
		"reservations\\.check_in <= \\? AND reservations\\.check_out >= \\?.*rooms\\.room_type_id = \\? " +
		"ORDER BY rooms\\.number ASC, rooms\\.id ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "room_type_id"}).
			AddRow(3, 101, 2).
			AddRow(4, 102, 2))
	mock.ExpectQuery("SELECT \\* FROM `room_types` WHERE `room_types`\\.`id` = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "nightly_price"}).
			AddRow(2, "Double", 2, 90.0))

	typeID := uint(2)
	in := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rooms, err := repo.AvailableRooms(context.Background(), &typeID, in, in.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("AvailableRooms returned error: %v", err)
	}
	if len(rooms) != 2 || rooms[0].Number != 101 {
		t.Fatalf("unexpected rooms: %+v", rooms)
	}
	if rooms[0].RoomType.Name != "Double" || rooms[0].RoomType.NightlyPrice != 90 {
		t.Fatalf("room type not preloaded: %+v", rooms[0].RoomType)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAvailableRoomsWithoutTypeHasNoTypeFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery("FROM `rooms` WHERE NOT EXISTS \\(.*\\) ORDER BY rooms\\.number ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "number", "room_type_id"}))

	in := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	rooms, err := repo.AvailableRooms(context.Background(), nil, in, in.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("AvailableRooms returned error: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("expected no rooms, got %d", len(rooms))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLockRoomTypeInsideTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT `id` FROM `rooms` WHERE room_type_id = \\? FOR UPDATE").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	err := repo.Transaction(context.Background(), func(tx BookingStore) error {
		return tx.LockRoomType(context.Background(), 2)
	})
	if err != nil {
		t.Fatalf("transaction returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransactionRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := repo.Transaction(context.Background(), func(tx BookingStore) error { return boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetReservationScopedToUser(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `reservations` WHERE id = \\? AND user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetReservation(context.Background(), 10, 7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateReservationDuplicateLocator(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec("INSERT INTO `reservations`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'abc' for key 'idx_reservations_locator'"})

	err := repo.CreateReservation(context.Background(), &models.Reservation{Locator: "abcdefgh"})
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdminReservationOrdering(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectQuery("SELECT \\* FROM `reservations` ORDER BY check_in DESC, check_out DESC, room_id ASC").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	list, err := repo.ListReservations(context.Background())
	if err != nil {
		t.Fatalf("ListReservations returned error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteRoomTypeCascades(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `reservations` WHERE room_id IN \\(SELECT .*id.* FROM `rooms` WHERE room_type_id = \\?\\)").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM `rooms` WHERE room_type_id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM `room_types` WHERE `room_types`\\.`id` = \\?").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.DeleteRoomType(context.Background(), 2); err != nil {
		t.Fatalf("DeleteRoomType returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDeleteRoomMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCatalogRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `reservations` WHERE room_id = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM `rooms` WHERE `rooms`\\.`id` = \\?").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.DeleteRoom(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUserKeepsInactiveFlag(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO `users` \\(`username`,`full_name`,`password`,`is_active`,`is_staff`,`created_at`,`updated_at`\\)").
		WithArgs("locked", "Locked Out", "hash", false, false, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(9, 1))

	user := &models.User{Username: "locked", FullName: "Locked Out", Password: "hash", IsActive: false}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.ID != 9 || user.IsActive {
		t.Fatalf("unexpected user after insert: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTranslateForeignKey(t *testing.T) {
	err := translateError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})
	if !errors.Is(err, ErrForeignKey) {
		t.Fatalf("expected ErrForeignKey, got %v", err)
	}
	if translateError(gorm.ErrRecordNotFound) != ErrNotFound {
		t.Fatalf("record not found not translated")
	}
}
