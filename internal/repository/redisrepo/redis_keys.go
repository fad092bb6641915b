package redisrepo

import "fmt"

const (
	POST_KEY     = "post:%s"     // <postID>
	AUTH_KEY_KEY = "auth-key:%s" // <apiKey>
)

func PostKey(postID string) string {
	return fmt.Sprintf(POST_KEY, postID)
}

func AuthKeyKey(apiKey string) string {
	return fmt.Sprintf(AUTH_KEY_KEY, apiKey)
}
