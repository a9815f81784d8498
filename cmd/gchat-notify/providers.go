package main

// Provider blank imports: each one activates a self-registering adapter.

import (
	_ "github.com/Strob0t/gchat-notify/internal/adapter/googlechat"
)
