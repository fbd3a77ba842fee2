package booking

import (
	"github.com/avdmitr/BCA-BookingChecker/pkg/dbmetrics"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
