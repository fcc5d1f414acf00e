package redis

import "fmt"

// sessionKey returns the Redis key holding the JSON snapshot
func sessionKey(prefix string) string {
	return fmt.Sprintf("%s:session", prefix)
}

// sessionLockKey returns the redsync mutex name guarding snapshot writes
func sessionLockKey(prefix string) string {
	return fmt.Sprintf("%s:session:lock", prefix)
}
