package constants

const ConsoleServiceName = "CTFPlatform-Console"

const MockServerServiceName = "CTFPlatform-MockServer"
