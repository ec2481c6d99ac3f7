package properties

import (
	"os"
	"strconv"
)

func RootPath() string {
	return os.Getenv("ROOT_PATH")
}

func OutputPath() string {
	if path := os.Getenv("OUTPUT_PATH"); path != "" {
		return path
	}
	return RootPath() + "/data/result"
}

// DecodeMemoryBudgetBytes caps how much memory a single band decode may
// allocate. Defaults to 512 MiB when DECODE_MEMORY_BUDGET_MB is unset.
func DecodeMemoryBudgetBytes() int64 {
	mb, err := strconv.Atoi(os.Getenv("DECODE_MEMORY_BUDGET_MB"))
	if err != nil || mb <= 0 {
		mb = 512
	}
	return int64(mb) * 1024 * 1024
}

func DiscordErrorNotificationUrl() string {
	return os.Getenv("DISCORD_ERROR_NOTIFICATION_URL")
}

func DiscordSuccessNotificationUrl() string {
	return os.Getenv("DISCORD_SUCCESS_NOTIFICATION_URL")
}
